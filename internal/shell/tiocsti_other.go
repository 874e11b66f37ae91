//go:build !linux && !darwin

package shell

func pushInput(uintptr, string) error {
	return ErrUnsupported
}
