package config

import (
	"errors"
	"flag"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from os.Args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-db-driver database driver (pgx | sqlite3)
//	-c/-config json file path with configs
//	-crm-url remote CRM base URL
//	-token-url OAuth token endpoint
//	-account CRM account identity
//	-conflict-policy remote_wins | local_wins | manual | field_ownership
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-interval periodic incremental sync interval (e.g., "15m")
func ParseFlags() *StructuredConfig {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	cfg, err := parseFlagSet(fs, os.Args[1:])
	if err != nil {
		return &StructuredConfig{}
	}
	return cfg
}

func parseFlagSet(fs *flag.FlagSet, args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN, databaseDriver string
	var jsonConfigPath string
	var crmURL, tokenURL, account string
	var conflictPolicy string
	var requestTimeout time.Duration
	var syncInterval time.Duration

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&databaseDriver, "db-driver", "", "Database driver (pgx | sqlite3)")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&crmURL, "crm-url", "", "Remote CRM base URL")
	fs.StringVar(&tokenURL, "token-url", "", "OAuth token endpoint")
	fs.StringVar(&account, "account", "", "CRM account identity")
	fs.StringVar(&conflictPolicy, "conflict-policy", "", "Conflict policy")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Incremental sync interval (e.g., 15m)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		Storage: Storage{
			DB: DB{
				Driver: databaseDriver,
				DSN:    databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			BaseURL: crmURL,
		},
		Auth: Auth{
			TokenURL: tokenURL,
			Account:  account,
		},
		Sync: Sync{
			ConflictPolicy: conflictPolicy,
		},
		Workers: Workers{
			IncrementalSyncInterval: syncInterval,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost"
// or empty, and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
