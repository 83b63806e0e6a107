// Package flagx contains helpers for letting several components parse their
// own subset of command-line flags from the same os.Args.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags listed in allowedFlags together with their
// values. Both "-f value" and "-f=value" forms are recognized; a following
// argument that starts with "-" is never taken as a value.
//
// The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	out, _ := split(args, allowedFlags)
	return out
}

// Positional returns the arguments FilterArgs would drop that are not
// flags themselves: subcommands and their operands, in order.
//
// The result is never nil.
func Positional(args []string, knownFlags []string) []string {
	_, rest := split(args, knownFlags)
	return rest
}

func split(args []string, flags []string) (matched, rest []string) {
	allowed := make(map[string]bool, len(flags))
	for _, f := range flags {
		allowed[f] = true
	}

	matched = make([]string, 0, len(args))
	rest = make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			rest = append(rest, arg)
			continue
		}

		if name, _, ok := strings.Cut(arg, "="); ok {
			if allowed[name] {
				matched = append(matched, arg)
			}
			continue
		}

		if !allowed[arg] {
			continue
		}
		matched = append(matched, arg)

		if next := i + 1; next < len(args) && !strings.HasPrefix(args[next], "-") {
			matched = append(matched, args[next])
			i = next
		}
	}

	return matched, rest
}

// JsonConfigFlags returns the config file path given with -c or -config,
// or "" when neither is present. Other arguments are ignored.
func JsonConfigFlags() string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(os.Args[1:], []string{"-c", "-config", "--config"}))

	return path
}
