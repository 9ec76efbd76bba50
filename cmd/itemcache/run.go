package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/itemcache"
	"github.com/unkn0wn-root/itemcache/internal/config"
	zaplog "github.com/unkn0wn-root/itemcache/log/zap"
	"github.com/unkn0wn-root/itemcache/provider/redis"
)

var (
	errUsage    = errors.New("usage")
	errNotFound = errors.New("not found")
)

const usage = `usage: itemcache <command> [flags]

commands:
  get KEY       [--type string|binary|json]
  put KEY VALUE [--type string|binary|json] [--expire-in DURATION | --expire-at RFC3339]
  list          [--prefix PREFIX] [--limit N]
  delete KEY
`

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errUsage
	}
	cmd, rest := args[0], args[1:]

	fs := pflag.NewFlagSet(cmd, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	var (
		typ      = fs.String("type", "", "item type: string, binary or json")
		expireIn = fs.Duration("expire-in", 0, "expire after this duration (put)")
		expireAt = fs.String("expire-at", "", "expire at this RFC3339 instant (put)")
		prefix   = fs.String("prefix", "", "key prefix (list)")
		limit    = fs.Int("limit", 0, "max keys, 0 = all (list)")
	)
	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	pos := fs.Args()

	t := itemcache.Type(strings.ToLower(*typ))
	switch t {
	case "", itemcache.TypeString, itemcache.TypeBinary, itemcache.TypeJSON:
	default:
		return fmt.Errorf("%w: unknown --type %q", errUsage, *typ)
	}

	exec, err := command(cmd, pos)
	if err != nil {
		return err
	}

	p, err := redis.NewFromURL(cfg.RedisURL)
	if err != nil {
		return err
	}
	c, err := itemcache.New(itemcache.Options{
		Provider:  p,
		Namespace: cfg.Namespace,
		Logger:    zaplog.New(log.Named("itemcache")),
	})
	if err != nil {
		_ = p.Close(ctx)
		return err
	}
	defer c.Close(ctx)

	req := request{
		cache:    c,
		args:     pos,
		typ:      t,
		expireIn: *expireIn,
		expireAt: *expireAt,
		prefix:   *prefix,
		limit:    *limit,
		out:      stdout,
	}
	log.Debug("running command", zap.String("cmd", cmd), zap.Strings("args", pos))
	return exec(ctx, req)
}

type request struct {
	cache    itemcache.Cache
	args     []string
	typ      itemcache.Type
	expireIn time.Duration
	expireAt string
	prefix   string
	limit    int
	out      io.Writer
}

type commandFunc func(context.Context, request) error

func command(name string, pos []string) (commandFunc, error) {
	want := map[string]int{"get": 1, "put": 2, "list": 0, "delete": 1}
	n, ok := want[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown command %q", errUsage, name)
	}
	if len(pos) != n {
		return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d", errUsage, name, n, len(pos))
	}
	switch name {
	case "get":
		return cmdGet, nil
	case "put":
		return cmdPut, nil
	case "list":
		return cmdList, nil
	default:
		return cmdDelete, nil
	}
}

func cmdGet(ctx context.Context, r request) error {
	item, ok, err := r.cache.Get(ctx, r.args[0], itemcache.GetOptions{Type: r.typ})
	if err != nil {
		return err
	}
	if !ok {
		return errNotFound
	}
	_, err = fmt.Fprintln(r.out, render(item))
	return err
}

func cmdPut(ctx context.Context, r request) error {
	item, err := parseItem(r.typ, r.args[1])
	if err != nil {
		return err
	}
	var opts itemcache.PutOptions
	switch {
	case r.expireIn != 0 && r.expireAt != "":
		return fmt.Errorf("%w: --expire-in and --expire-at are exclusive", errUsage)
	case r.expireIn != 0:
		opts.Expiration = time.Now().Add(r.expireIn)
	case r.expireAt != "":
		at, err := time.Parse(time.RFC3339, r.expireAt)
		if err != nil {
			return fmt.Errorf("%w: --expire-at: %v", errUsage, err)
		}
		opts.Expiration = at
	}
	return r.cache.Put(ctx, r.args[0], item, opts)
}

func cmdList(ctx context.Context, r request) error {
	keys, err := r.cache.List(ctx, itemcache.ListOptions{Prefix: r.prefix, Limit: r.limit})
	if err != nil {
		return err
	}
	for _, k := range keys {
		if _, err := fmt.Fprintln(r.out, k); err != nil {
			return err
		}
	}
	return nil
}

func cmdDelete(ctx context.Context, r request) error {
	return r.cache.Delete(ctx, r.args[0])
}

// parseItem reads VALUE as text by default, base64 for binary and raw JSON for json.
func parseItem(t itemcache.Type, v string) (itemcache.Item, error) {
	switch t {
	case itemcache.TypeBinary:
		b, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("%w: binary value must be base64: %v", errUsage, err)
		}
		return itemcache.Binary(b), nil
	case itemcache.TypeJSON:
		j := itemcache.JSON(v)
		if _, err := itemcache.EncodeItem(j); err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		return j, nil
	default:
		return itemcache.String(v), nil
	}
}

func render(item itemcache.Item) string {
	switch v := item.(type) {
	case itemcache.String:
		return string(v)
	case itemcache.Binary:
		return base64.StdEncoding.EncodeToString(v)
	case itemcache.JSON:
		return string(v)
	}
	return ""
}
