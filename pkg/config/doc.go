/*
Package config loads and validates sedboy rule files.

	            +-------------+
	            |   Config    |
	            |   (Rules)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   JSON   | |   YAML   | |   HCL    |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Reads a rule file and picks a parser by extension
- Validates every substitution command up front
- Applies defaults (worker count)

📝 Formats:

YAML:

	workers: 8
	rules:
	  - command: s/oldpkg/newpkg/g
	    files: ["*.go", "cmd/**", "pkg/**"]
	    ignore: ["vendor/**"]

HCL (environment variables are available as env):

	dry_run = true

	rule {
	  command = "s/Copyright 2024/Copyright ${env.YEAR}/"
	  files   = ["*.go", "pkg/**", "LICENSE"]
	}

HCL strings are templates, so a braced group reference must be written as
$${1} or $${name} to reach the command as ${1} or ${name}. An unescaped
${1} is interpolated by HCL and becomes the literal 1. Bare $1 passes
through unchanged:

	rule {
	  command = "s/(?P<word>a)b/$${word}c/g"
	  files   = ["pkg/**"]
	}

JSON uses the same keys as YAML.

🔍 Example:

	cfg, err := config.Load(ctx, ".sedboy.yaml")
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	for _, rule := range cfg.Rules {
		// rule.Command has already been parsed and compiled once
	}
*/
package config
