/*
Package gfio opens the files named by commandline flags, with "stdin" and
"stdout" standing for the standard streams. Errors name the flag the bad
path came from.
*/
package gfio

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/pflag"
)

// describe renders a flag the way a user typed it, e.g. "-o / --outfile"
func describe(flag pflag.Flag) string {
	if len(flag.Shorthand) == 0 {
		return "--" + flag.Name
	}
	return "-" + flag.Shorthand + " / --" + flag.Name
}

func parseErr(err error, flag pflag.Flag) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return errors.New(pe.Op + " " + describe(flag) + " " + pe.Path + ": " + pe.Err.Error())
	}
	return err
}

// OpenIn opens the file named by flag for reading
func OpenIn(flag pflag.Flag) (*os.File, error) {
	name := flag.Value.String()
	if name == "stdin" {
		return os.Stdin, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, parseErr(err, flag)
	}
	return f, nil
}

// OpenOut creates (or truncates) the file named by flag
func OpenOut(flag pflag.Flag) (*os.File, error) {
	name := flag.Value.String()
	if name == "stdout" {
		return os.Stdout, nil
	}
	f, err := os.Create(name)
	if err != nil {
		return nil, parseErr(err, flag)
	}
	return f, nil
}

// Close closes f unless it is one of the standard streams
func Close(f *os.File) error {
	if f == os.Stdin || f == os.Stdout {
		return nil
	}
	return f.Close()
}
