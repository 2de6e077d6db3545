package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/catalog"
	"github.com/reoring/ofxkit/dialect"
	"github.com/reoring/ofxkit/envelope"
	"github.com/reoring/ofxkit/export"
	"github.com/reoring/ofxkit/internal/config"
	"github.com/reoring/ofxkit/internal/logging"
	"github.com/reoring/ofxkit/wire"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, `ofxkit CLI

Usage:
  ofxkit [-config FILE] inspect [-format tree|json|yaml|cbor] FILE
  ofxkit [-config FILE] convert [-to sgml|xml] [-version N] [-o OUT] FILE
  ofxkit [-config FILE] validate [-strict] FILE
  ofxkit [-config FILE] schema [-format json|yaml] MESSAGESET

Settings come from the -config TOML file and OFXKIT_* environment variables.`)
}

type cli struct {
	cfg    config.Config
	log    zerolog.Logger
	stdout io.Writer
	stderr io.Writer
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("ofxkit", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "TOML configuration file")
	global.Usage = func() { usage(stderr) }
	if err := global.Parse(args); err != nil {
		return 2
	}
	rest := global.Args()
	if len(rest) == 0 {
		usage(stderr)
		return 2
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	c := &cli{cfg: cfg, log: logging.NewWriter(stderr, cfg), stdout: stdout, stderr: stderr}

	switch rest[0] {
	case "inspect":
		return c.inspect(rest[1:])
	case "convert":
		return c.convert(rest[1:])
	case "validate":
		return c.validate(rest[1:])
	case "schema":
		return c.schema(rest[1:])
	}
	usage(stderr)
	return 2
}

func (c *cli) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *cli) options() ofxkit.Options {
	o := c.cfg.Options()
	o.Logger = &c.log
	return o
}

func (c *cli) fail(err error) int {
	if iss, ok := ofxkit.AsIssues(err); ok {
		for _, it := range iss {
			fmt.Fprintln(c.stderr, it.String())
		}
		return 1
	}
	fmt.Fprintln(c.stderr, err)
	return 1
}

// oneFile parses args and returns the single positional argument.
func oneFile(fs *flag.FlagSet, args []string) (string, bool) {
	if err := fs.Parse(args); err != nil {
		return "", false
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return "", false
	}
	return fs.Arg(0), true
}

func (c *cli) readEnvelope(path string, opts ofxkit.Options) (*envelope.Envelope, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	env, err := envelope.Read(f, catalog.Registry(), opts)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Str("file", path).Str("dialect", env.Dialect).Int("sets", len(env.MessageSets)).Msg("envelope read")
	return env, nil
}

func (c *cli) inspect(args []string) int {
	fs := c.flags("inspect")
	format := fs.String("format", "tree", "output format: tree, json, yaml or cbor")
	path, ok := oneFile(fs, args)
	if !ok {
		return 2
	}
	f, err := os.Open(path)
	if err != nil {
		return c.fail(err)
	}
	defer f.Close()

	d, r, err := dialect.Sniff(f)
	if err != nil {
		return c.fail(err)
	}
	h, root, err := d.Read(r, dialect.ReadOptions{MaxDepth: c.cfg.MaxDepth})
	if err != nil {
		return c.fail(err)
	}
	c.log.Debug().Str("file", path).Str("dialect", d.Name()).Msg("document read")

	if *format == "tree" {
		fmt.Fprintf(c.stdout, "dialect: %s\n", d.Name())
		h.Range(func(k, v string) bool {
			fmt.Fprintf(c.stdout, "%s: %s\n", k, v)
			return true
		})
		fmt.Fprintln(c.stdout)
		fmt.Fprint(c.stdout, root.String())
		return 0
	}
	data, err := export.Encode(root, *format)
	if err != nil {
		return c.fail(err)
	}
	if _, err := c.stdout.Write(data); err != nil {
		return c.fail(err)
	}
	return 0
}

func (c *cli) convert(args []string) int {
	fs := c.flags("convert")
	to := fs.String("to", c.cfg.Dialect, "output dialect: sgml or xml")
	version := fs.String("version", c.cfg.Version, "header VERSION of the output, e.g. 102 or 220")
	out := fs.String("o", "", "output file (default stdout)")
	path, ok := oneFile(fs, args)
	if !ok {
		return 2
	}
	d, err := dialect.Lookup(strings.ToLower(*to))
	if err != nil {
		return c.fail(err)
	}
	env, err := c.readEnvelope(path, c.options())
	if err != nil {
		return c.fail(err)
	}
	if *version != "" {
		vd, err := dialect.ForVersionString(*version)
		if err != nil {
			return c.fail(err)
		}
		if vd.Name() != d.Name() {
			return c.fail(fmt.Errorf("version %s belongs to %s, not %s", *version, vd.Name(), d.Name()))
		}
		env.Header.Set(wire.HeaderVersion, *version)
	}

	w := c.stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return c.fail(err)
		}
		defer f.Close()
		w = f
	}
	if err := envelope.Write(w, env, d, catalog.Registry(), c.options()); err != nil {
		return c.fail(err)
	}
	c.log.Info().Str("from", env.Dialect).Str("to", d.Name()).Msg("converted")
	return 0
}

func (c *cli) validate(args []string) int {
	fs := c.flags("validate")
	strict := fs.Bool("strict", c.cfg.Options().Mode == ofxkit.Strict, "treat unknown and misplaced tags as errors")
	path, ok := oneFile(fs, args)
	if !ok {
		return 2
	}
	opts := c.options()
	if *strict {
		opts.Mode = ofxkit.Strict
	}
	env, err := c.readEnvelope(path, opts)
	if err != nil {
		return c.fail(err)
	}

	fmt.Fprintf(c.stdout, "dialect %s, version %s\n", env.Dialect, env.Header.Value(wire.HeaderVersion))
	reg := catalog.Registry()
	failed := 0
	for _, ms := range env.MessageSets {
		tag, _ := reg.TagOf(ms)
		fmt.Fprintf(c.stdout, "%s (%s)\n", tag, ms.MessageSetType())
		for _, tx := range ms.Transactions() {
			line := "  trnuid " + envelope.UID(tx)
			if rs := tx.Response(); rs != nil {
				line += fmt.Sprintf(" status %d %s", rs.Status.Code, rs.Status.Severity)
				if err := rs.Status.Err(); err != nil {
					failed++
				}
			}
			fmt.Fprintln(c.stdout, line)
		}
	}
	for _, it := range env.Warnings {
		fmt.Fprintf(c.stdout, "warning: %s\n", it)
	}
	if failed > 0 {
		fmt.Fprintf(c.stdout, "%d transaction(s) reported an error status\n", failed)
	}
	return 0
}

func (c *cli) schema(args []string) int {
	fs := c.flags("schema")
	format := fs.String("format", export.YAML, "output format: json or yaml")
	tag, ok := oneFile(fs, args)
	if !ok {
		return 2
	}
	reg := catalog.Registry()
	e, found := reg.Lookup(strings.ToUpper(tag))
	if !found {
		return c.fail(errors.New("unknown message set " + tag + "; known: " + strings.Join(reg.Tags(), ", ")))
	}
	o, err := export.OutlineOf(e.New())
	if err != nil {
		return c.fail(err)
	}
	data, err := export.EncodeOutline(o, *format)
	if err != nil {
		return c.fail(err)
	}
	if _, err := c.stdout.Write(data); err != nil {
		return c.fail(err)
	}
	return 0
}
