// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves provider credentials. A credential is taken from
// the process environment when set and non-empty, otherwise from a
// dotenv-style file. The file is read at most once per Loader.
//
// Credential structs declare their variables with `env:"NAME"` tags and are
// filled by Loader.Bind.
package secrets

import (
	"bufio"
	"bytes"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// Loader reads the env file lazily and merges it with the process environment.
// The zero value is not usable; construct with NewLoader.
type Loader struct {
	path string

	// LookupEnv reads the process environment. Tests replace it.
	LookupEnv func(string) (string, bool)

	Logger zerolog.Logger

	once sync.Once
	file map[string]string
}

// NewLoader returns a Loader backed by the env file at path.
func NewLoader(path string) *Loader {
	return &Loader{
		path:      path,
		LookupEnv: os.LookupEnv,
		Logger:    zerolog.Nop(),
	}
}

// File returns the key/value pairs of the env file. A missing or unreadable
// file yields an empty map; the read is attempted only once.
func (l *Loader) File() map[string]string {
	l.once.Do(func() {
		data, err := os.ReadFile(l.path)
		if err != nil {
			if !os.IsNotExist(err) {
				l.Logger.Warn().Err(err).Str("path", l.path).Msg("could not read env file")
			}
			l.file = map[string]string{}
			return
		}
		l.file = Parse(data)
		l.Logger.Debug().Str("path", l.path).Int("keys", len(l.file)).Msg("loaded env file")
	})
	return l.file
}

// Parse reads dotenv-style content. Blank lines, lines starting with '#' and
// lines without '=' are skipped. The first '=' separates key from value and
// both are trimmed. Quotes are kept as written.
func Parse(data []byte) map[string]string {
	out := make(map[string]string)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	return out
}

// lookup returns the credential for key, preferring a non-empty process
// environment value over the env file.
func (l *Loader) lookup(key string) string {
	if v, ok := l.LookupEnv(key); ok && v != "" {
		return v
	}
	return l.File()[key]
}

// Bind fills the `env`-tagged string fields of dst, which must be a pointer
// to a struct.
func (l *Loader) Bind(dst any) error {
	environ := make(map[string]string)
	for _, key := range keys(dst) {
		if v := l.lookup(key); v != "" {
			environ[key] = v
		}
	}
	if err := env.ParseWithOptions(dst, env.Options{Environment: environ}); err != nil {
		return errors.Wrap(err, "binding credentials")
	}
	return nil
}

// Missing returns the variable names of v's empty `env`-tagged fields in
// declaration order. v may be a struct or a pointer to one.
func Missing(v any) []string {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if rv.Kind() != reflect.Struct {
		return nil
	}
	var missing []string
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		key := tagKey(rt.Field(i))
		if key == "" {
			continue
		}
		if f := rv.Field(i); f.Kind() == reflect.String && strings.TrimSpace(f.String()) == "" {
			missing = append(missing, key)
		}
	}
	return missing
}

func keys(v any) []string {
	rt := reflect.TypeOf(v)
	for rt != nil && rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}
	if rt == nil || rt.Kind() != reflect.Struct {
		return nil
	}
	var out []string
	for i := 0; i < rt.NumField(); i++ {
		if key := tagKey(rt.Field(i)); key != "" {
			out = append(out, key)
		}
	}
	return out
}

func tagKey(f reflect.StructField) string {
	tag, ok := f.Tag.Lookup("env")
	if !ok {
		return ""
	}
	key, _, _ := strings.Cut(tag, ",")
	return key
}
