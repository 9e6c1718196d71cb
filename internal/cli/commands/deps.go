package commands

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Linkshelf/internal/cli/api"
	"Linkshelf/internal/cli/form"
	"Linkshelf/internal/cli/model"
	"Linkshelf/internal/cli/notify"
	"Linkshelf/internal/cli/service"
	"Linkshelf/internal/config"
)

// deps: то, что нужно почти каждой команде: клиент API, настройки состояний и валидатор.
type deps struct {
	client   *api.Client
	opts     service.Options
	validate *form.Validator
}

func newDeps(cfg *config.Config) deps {
	opts := []api.Option{api.WithLogger(logger)}
	if cfg.APIRateLimit > 0 {
		opts = append(opts, api.WithRateLimit(cfg.APIRateLimit, 1))
	}
	return deps{
		client:   api.New(serverURL(cfg), opts...),
		opts:     service.Options{Timeout: cfg.RequestTimeout, Logger: logger},
		validate: form.New(),
	}
}

func serverURL(cfg *config.Config) string {
	if cfg.ServerURL != "" {
		return cfg.ServerURL
	}
	return "http://localhost:8000"
}

// valid prints validation errors and reports whether in passed.
func (d deps) valid(in any) bool {
	if err := d.validate.Validate(in); err != nil {
		notify.Print(Out, notify.Notification{Kind: notify.Failure, Title: "Invalid input", Description: err.Error()})
		return false
	}
	return true
}

// newFlagSet returns a silent flag set; parse errors surface as ErrUsage.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parseInterleaved parses flags that may appear before, between or after
// positional arguments and returns the positionals.
func parseInterleaved(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, ErrUsage
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return pos, nil
		}
		pos = append(pos, rest[0])
		args = rest[1:]
	}
}

// wasSet reports whether the flag was given explicitly.
func wasSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func optString(fs *flag.FlagSet, name, v string) *string {
	if !wasSet(fs, name) {
		return nil
	}
	return &v
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrUsage
	}
	return id, nil
}

// stringList: повторяемый флаг (--tag a --tag b), также принимает "a,b".
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			*l = append(*l, p)
		}
	}
	return nil
}

// collectionFlag holds --collection id|none.
type collectionFlag struct {
	ref *model.CollectionRef
}

func (c *collectionFlag) String() string {
	if c.ref == nil {
		return ""
	}
	return c.ref.String()
}

func (c *collectionFlag) Set(v string) error {
	ref, err := model.ParseCollectionRef(v)
	if err != nil {
		return err
	}
	c.ref = &ref
	return nil
}

// int64Flag is an optional numeric flag.
type int64Flag struct {
	v *int64
}

func (f *int64Flag) String() string {
	if f.v == nil {
		return ""
	}
	return strconv.FormatInt(*f.v, 10)
}

func (f *int64Flag) Set(s string) error {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %q", s)
	}
	f.v = &id
	return nil
}

// submissions: общий на процесс шлюз для изменяющих запросов.
var submissions form.Gate

// submit runs op through the shared gate. While another submission is in flight
// it reports form.ErrBusy under title and returns ErrReported without calling op.
func submit(title string, op func() bool) (bool, error) {
	var ok bool
	if err := submissions.Do(func() error {
		ok = op()
		return nil
	}); err != nil {
		return false, failed(title, err)
	}
	return ok, nil
}

// failed prints the notification for a failed hook operation and returns ErrReported.
func failed(title string, err error) error {
	notify.Print(Out, notify.Failed(title, err))
	return ErrReported
}

// notFound stands for an item missing from a freshly loaded list.
func notFound() error {
	return &api.Error{Op: "lookup", Status: 404, Detail: "not found"}
}
