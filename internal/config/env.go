package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// Lookup helpers.  Unset, empty and unparsable values fall back to def.

func envStr(key, def string) string {
    if v := strings.TrimSpace(os.Getenv(key)); v != "" {
        return v
    }
    return def
}

func envBool(key string, def bool) bool {
    switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
    case "1", "t", "true", "y", "yes", "on":
        return true
    case "0", "f", "false", "n", "no", "off":
        return false
    }
    return def
}

func envInt(key string, def int) int {
    n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
    if err != nil {
        return def
    }
    return n
}

func envDur(key string, def time.Duration) time.Duration {
    d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
    if err != nil {
        return def
    }
    return d
}

// envList splits a comma separated variable, dropping blanks.
func envList(key, def string) []string {
    return splitList(envStr(key, def))
}

// envSet is envList as a lookup table; fold maps each entry first.
func envSet(key, def string, fold func(string) string) map[string]bool {
    set := map[string]bool{}
    for _, v := range envList(key, def) {
        if fold != nil {
            v = fold(v)
        }
        set[v] = true
    }
    return set
}
