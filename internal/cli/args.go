// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// args.go - Flag parsing shared by all teller subcommands.
package cli

import "strings"

// argParser separates flags from positional arguments. It accepts:
//
//	--flag value     Long flag with space-separated value
//	--flag=value     Long flag with equals sign
//	--flag           Boolean flag (no value)
//	-f value         Short flag with space-separated value
type argParser struct {
	flags      map[string]string
	boolFlags  map[string]bool
	positional []string
}

// valueFlags take a value; anything else starting with "-" is boolean.
var valueFlags = map[string]bool{
	"theme": true,
	"api":   true,
}

func newArgParser(raw []string) *argParser {
	p := &argParser{
		flags:     make(map[string]string),
		boolFlags: make(map[string]bool),
	}

	i := 0
	for i < len(raw) {
		arg := raw[i]
		if !strings.HasPrefix(arg, "-") {
			p.positional = append(p.positional, arg)
			i++
			continue
		}

		if strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			name := strings.TrimLeft(parts[0], "-")
			if parts[1] == "true" || parts[1] == "false" {
				p.boolFlags[name] = parts[1] == "true"
			} else {
				p.flags[name] = parts[1]
			}
			i++
			continue
		}

		name := strings.TrimLeft(arg, "-")
		if valueFlags[name] && i+1 < len(raw) {
			p.flags[name] = raw[i+1]
			i += 2
			continue
		}
		p.boolFlags[name] = true
		i++
	}

	return p
}

func (p *argParser) flag(name string) string   { return p.flags[name] }
func (p *argParser) boolFlag(name string) bool { return p.boolFlags[name] }
func (p *argParser) positionals() []string     { return p.positional }
