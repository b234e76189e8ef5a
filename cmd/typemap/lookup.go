package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/typemap"
	"github.com/fwojciec/typemap/fs"
)

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	m, err := fs.LoadMap(c.Map)
	if err != nil {
		if typemap.ErrorCode(err) == typemap.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "Hint: Run 'typemap parse' to create the mapping file\n")
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	entry, ok := m.Get(c.Identifier)
	if !ok {
		err := typemap.Errorf(typemap.ENOTFOUND, "no entry for %q", c.Identifier)
		fmt.Fprintf(deps.Stderr, "error: %s\n", typemap.ErrorMessage(err))
		return err
	}

	if c.Text {
		fmt.Fprintln(deps.Stdout, typemap.FormatEntry(entry))
		return nil
	}

	buf, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	fmt.Fprintln(deps.Stdout, string(buf))
	return nil
}
