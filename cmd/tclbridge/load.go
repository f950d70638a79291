package main

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/feather-lang/tclbridge"
	"github.com/feather-lang/tclbridge/interp"
)

func newLoadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "load [file]",
		Short: "Load arrays and lists from a YAML file and print them",
		Long: `Load reads a YAML document of arrays and lists into a fresh interpreter,
prints every array and list back, then releases everything and reports
leaked cells. The path defaults to $` + configEnv + `; "-" reads stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := resolveInputPath(args, os.Getenv)
			if err != nil {
				return err
			}
			doc, err := readDocument(path, cmd.InOrStdin(), os.Getenv)
			if err != nil {
				return err
			}

			ip := interp.NewInterp(interp.WithLogger(a.log))
			defer ip.Close()
			return runLoad(ip, doc, cmd.OutOrStdout(), a.log)
		},
	}
}

// runLoad populates ip from doc, prints the result and tears it down again.
func runLoad(ip *interp.Interp, doc *document, out io.Writer, log *zap.Logger) error {
	var arrays []*tclbridge.Array
	for _, spec := range doc.Arrays {
		arr := tclbridge.NewArray(ip, spec.Name, tclbridge.InNamespace(spec.Namespace))
		if err := tclbridge.Import(arr, spec.Elements); err != nil {
			return fmt.Errorf("array %s: %w", arr.Name(), err)
		}
		arrays = append(arrays, arr)
	}

	listNames := slices.Sorted(maps.Keys(doc.Lists))
	lists := make([]*tclbridge.Value, 0, len(listNames))
	defer func() {
		for _, v := range lists {
			v.Release()
		}
	}()
	for _, name := range listNames {
		lists = append(lists, tclbridge.FromSlice(ip, doc.Lists[name]))
	}

	for _, arr := range arrays {
		elems, err := arr.Strings()
		if err != nil {
			return fmt.Errorf("array %s: %w", arr.Name(), err)
		}
		keyColor.Fprintf(out, "%s:\n", arr.Name())
		for _, k := range slices.Sorted(maps.Keys(elems)) {
			fmt.Fprintf(out, "  %s = %s\n", k, elems[k])
		}
	}
	for i, v := range lists {
		n, err := v.Len()
		if err != nil {
			return fmt.Errorf("list %s: %w", listNames[i], err)
		}
		keyColor.Fprintf(out, "%s", listNames[i])
		fmt.Fprintf(out, " [%d]: %s\n", n, v.String())
	}

	// Tear down so leaks show up as live cells
	cleared := make(map[string]bool)
	for _, arr := range arrays {
		if cleared[arr.Name()] {
			continue
		}
		cleared[arr.Name()] = true
		names, err := arr.Names()
		if err != nil {
			return err
		}
		for _, k := range names {
			if err := arr.Unset(k); err != nil {
				return err
			}
		}
	}
	for _, v := range lists {
		v.Release()
	}
	lists = nil
	if n := ip.Live(); n > 0 {
		log.Warn("leaked cells", zap.Int("cells", n))
		return fmt.Errorf("%d cells leaked", n)
	}
	return nil
}
