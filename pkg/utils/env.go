package utils

import (
	"context"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/code-100-precent/lingrx/pkg/cache"
)

const envCacheTTL = 10 * time.Second

var (
	envCacheMu sync.Mutex
	envCache   cache.Cache
)

// InitEnvCache sets the cache consulted by LookupEnv and closes the one it
// replaces. Passing nil installs the default LRU cache.
func InitEnvCache(c cache.Cache) {
	if c == nil {
		c = newDefaultEnvCache()
	}
	envCacheMu.Lock()
	old := envCache
	envCache = c
	envCacheMu.Unlock()
	if old != nil && old != c {
		old.Close()
	}
}

// EnvCache returns the cache LookupEnv currently uses
func EnvCache() cache.Cache {
	return getEnvCache()
}

func newDefaultEnvCache() cache.Cache {
	return cache.NewLRUCache(cache.LRUCacheConfig{
		MaxSize:           1024,
		DefaultExpiration: envCacheTTL,
		CleanupInterval:   time.Minute,
	})
}

func getEnvCache() cache.Cache {
	envCacheMu.Lock()
	defer envCacheMu.Unlock()
	if envCache == nil {
		envCache = newDefaultEnvCache()
	}
	return envCache
}

func GetEnv(key string) string {
	v, _ := LookupEnv(key)
	return v
}

func GetBoolEnv(key string) bool {
	v, _ := strconv.ParseBool(GetEnv(key))
	return v
}

func GetIntEnv(key string) int64 {
	v, _ := strconv.ParseInt(GetEnv(key), 10, 64)
	return v
}

// LookupEnv checks the process environment, then the cache, then .env in
// the working directory. Keys are upper-cased.
func LookupEnv(key string) (value string, found bool) {
	key = strings.ToUpper(key)
	c := getEnvCache()
	ctx := context.Background()

	if v, ok := os.LookupEnv(key); ok {
		c.Set(ctx, key, v, envCacheTTL)
		return v, true
	}
	if val, ok := c.Get(ctx, key); ok {
		if v, ok := val.(string); ok {
			return v, true
		}
	}

	data, err := os.ReadFile(".env")
	if err != nil {
		return "", false
	}
	for k, v := range parseEnv(data) {
		c.Set(ctx, k, v, envCacheTTL)
		if k == key {
			value, found = v, true
		}
	}
	return value, found
}

// LoadEnvs fills the string, int and bool fields of objPtr from their env tags
func LoadEnvs(objPtr any) {
	if objPtr == nil {
		return
	}
	elm := reflect.ValueOf(objPtr).Elem()
	elmType := elm.Type()

	for i := 0; i < elm.NumField(); i++ {
		f := elm.Field(i)
		if !f.CanSet() {
			continue
		}
		keyName := elmType.Field(i).Tag.Get("env")
		if keyName == "-" {
			continue
		}
		if keyName == "" {
			keyName = elmType.Field(i).Name
		}
		v, ok := LookupEnv(keyName)
		if !ok {
			continue
		}
		switch f.Kind() {
		case reflect.String:
			f.SetString(v)
		case reflect.Int, reflect.Int64:
			if iv, err := strconv.ParseInt(v, 10, 64); err == nil {
				f.SetInt(iv)
			}
		case reflect.Bool:
			if yes, err := strconv.ParseBool(strings.ToLower(v)); err == nil {
				f.SetBool(yes)
			}
		}
	}
}

// LoadEnv loads .env, or .env.<env> when env is set, into the process environment
func LoadEnv(env string) error {
	envFile := ".env"
	if env != "" {
		envFile = ".env." + env
	}

	data, err := os.ReadFile(envFile)
	if err != nil {
		return err
	}
	for key, value := range parseEnv(data) {
		os.Setenv(key, value)
	}
	return nil
}

func parseEnv(data []byte) map[string]string {
	values := make(map[string]string)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(parts[0]))
		values[key] = strings.Trim(strings.TrimSpace(parts[1]), `"'`)
	}
	return values
}
