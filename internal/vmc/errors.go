package vmc

import "fmt"

func errArgCount(n int) error {
	return fmt.Errorf("vmc: expected 8 arguments (name + 7 floats), got %d", n)
}

func errUnexpectedName(name string) error {
	return fmt.Errorf("vmc: expected root bone name \"root\", got %q", name)
}

func errUnknownBone(name string) error {
	return fmt.Errorf("vmc: unknown bone name %q", name)
}

func errUnrecognizedAddress(addr string) error {
	return fmt.Errorf("vmc: unrecognized address %q", addr)
}
