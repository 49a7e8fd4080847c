package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr          string
	DBUrl         string
	TokenSecret   string
	TokenTTL      time.Duration
	AdminPassword string
	Debug         bool

	// media storage: Minio when an endpoint is configured, a local
	// directory served under /media otherwise
	MediaDir       string
	MediaBaseUrl   string
	MinioEndpoint  string
	MinioBucket    string
	MinioAccessKey string
	MinioSecretKey string
	MinioSSL       bool
}

// ParseFlags reads command line flags, with secrets falling back to the
// environment (a .env file is honored when present).
func ParseFlags() (cfg Config, err error) {
	godotenv.Load()

	var host string
	flag.StringVar(&host, "host", "0.0.0.0", "listen host name")
	var port uint
	flag.UintVar(&port, "port", 80, "listen port number")
	flag.StringVar(&cfg.DBUrl, "db-url", "formbuilder.sqlite", "path to SQLite3 DB file")
	flag.StringVar(&cfg.TokenSecret, "token-secret", os.Getenv("TOKEN_SECRET"), "secret key for token encryption and decryption")
	var ttl uint
	flag.UintVar(&ttl, "token-ttl", 120, "token TTL in seconds")
	flag.StringVar(&cfg.AdminPassword, "admin-password", os.Getenv("ADMIN_PASSWORD"), "bootstrap password for the admin user")
	flag.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")

	flag.StringVar(&cfg.MediaDir, "media-dir", "media", "local media directory (used when no Minio endpoint is set)")
	flag.StringVar(&cfg.MediaBaseUrl, "media-base-url", "", "public base URL for locally stored media (default http://<addr>/media)")
	flag.StringVar(&cfg.MinioEndpoint, "minio-endpoint", os.Getenv("MINIO_ENDPOINT"), "Minio endpoint host:port")
	flag.StringVar(&cfg.MinioBucket, "minio-bucket", "formbuilder", "Minio bucket for media uploads")
	flag.BoolVar(&cfg.MinioSSL, "minio-ssl", false, "use TLS to reach Minio")
	flag.Parse()

	cfg.Addr = net.JoinHostPort(host, strconv.Itoa(int(port)))
	cfg.TokenTTL = time.Duration(ttl) * time.Second
	cfg.MinioAccessKey = os.Getenv("MINIO_ACCESS_KEY")
	cfg.MinioSecretKey = os.Getenv("MINIO_SECRET_KEY")
	if cfg.MediaBaseUrl == "" {
		cfg.MediaBaseUrl = cfg.Url() + "/media"
	}

	if cfg.TokenSecret == "" {
		err = errors.New("missing parameter -token-secret")
	}

	return
}

func (cfg Config) Url() (url string) {
	url = cfg.Addr
	url = regexp.MustCompile(`^0.0.0.0`).ReplaceAllString(url, "localhost")
	url = "http://" + url
	return
}

// UseMinio reports whether uploads go to the object store.
func (cfg Config) UseMinio() bool {
	return cfg.MinioEndpoint != ""
}
