package config // package config loads application configuration from environment variables

import (
    "log"      // log is used to report configuration errors and halt execution
    "os"       // os provides access to environment variables
    "strconv"  // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations and costs.
type Config struct {
    Env           string // application environment (e.g. "dev", "prod")
    Port          string // HTTP port to listen on
    DBUser        string // database username
    DBPass        string // database password (optional)
    DBHost        string // database host address
    DBPort        string // database port number
    DBName        string // database name
    SessionSecret string // secret used to sign session cookies
    SessionTTLH   int    // session lifetime in hours
    BcryptCost    int    // bcrypt cost for password hashing
    UploadDir     string // directory where event images are stored
    AdminEmail    string // optional seed admin account email
    AdminPassword string // optional seed admin account password
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Optional values
// fall back to sensible defaults.
func Load() Config {
    return Config{
        Env:           must("APP_ENV"),                     // environment (dev/test/prod)
        Port:          must("APP_PORT"),                    // port to bind the HTTP server
        DBUser:        must("DB_USER"),                     // database user
        DBPass:        os.Getenv("DB_PASS"),                // database password (empty allowed)
        DBHost:        must("DB_HOST"),                     // database host
        DBPort:        must("DB_PORT"),                     // database port
        DBName:        must("DB_NAME"),                     // database name
        SessionSecret: must("SESSION_SECRET"),              // secret for signing the session cookie
        SessionTTLH:   intDefault("SESSION_TTL_HOURS", 12), // how long a login stays valid
        BcryptCost:    intDefault("BCRYPT_COST", 12),       // bcrypt cost factor
        UploadDir:     getenv("UPLOAD_DIR", "web/public/uploads/events"), // image upload directory
        AdminEmail:    os.Getenv("ADMIN_EMAIL"),            // seed admin account (optional)
        AdminPassword: os.Getenv("ADMIN_PASSWORD"),         // seed admin password (optional)
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// getenv returns the value of an environment variable or the given default
// when the variable is unset or empty.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// intDefault reads an optional integer variable, falling back to def when
// the variable is unset.  An unparseable value is a fatal configuration
// error rather than a silent fallback.
func intDefault(key string, def int) int {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}
