package config

// MountOptions holds high-level settings for mounting a session tree.
// No go-fuse types are exposed here.
type MountOptions struct {
	Debug  bool   // fuse debug logs
	FsName string // mount's FsName
	Name   string // mount's Name
}

// ShellOptions configures every new shell session.
type ShellOptions struct {
	User     string // Owner of seeded and created nodes, reported by whoami (Default "user")
	Hostname string // Shown in the prompt and uname/neofetch (Default "webcli")
	Home     string // Starting directory and target of bare "cd" (Default "/home/user")
	Theme    string // Initial theme name (Default "matrix")
	SeedFile string // Optional yaml/json node definition file; empty uses the built-in seed
}

// ServerOptions configures the HTTP API.
type ServerOptions struct {
	Addr           string   // Listen address (Default 127.0.0.1:8080)
	AllowedOrigins []string // CORS allow list
	RateLimit      float64  // Requests per second per client IP (Default 20)
	RateBurst      int      // Token bucket burst size per client IP (Default 40)
	MaxSessions    int      // Upper bound of concurrently open sessions (Default 256)
	Metrics        bool     // Expose /metrics (Default true)
}
