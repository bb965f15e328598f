package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
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

// parseFlags parses configuration flags from args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-server remote document server address used by the client
//	-server-grpc remote gRPC health address used by the client
//	-d database DSN
//	-c/-config json file path with configs
//	-token bearer token of the signed-in user
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-k request body signing key
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-sync-interval auto-sync period
//	-batch-size queue entries per pass
//	-log-file client log file path
//	-headless run the client without the sync console
func parseFlags(args []string) (*StructuredConfig, error) {
	var serverAddress, grpcServerAddress NetAddress
	var adapterGRPCAddress NetAddress
	var adapterAddress string
	var databaseDSN string
	var jsonConfigPath string
	var userToken string
	var tokenSignKey string
	var tokenIssuer string
	var hashKey string
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var batchSize int
	var logFile string
	var headless bool

	fs := flag.NewFlagSet("gig-sync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&serverAddress, "a", "Net address host:port")
	fs.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	fs.StringVar(&adapterAddress, "server", "", "Remote document server URL")
	fs.Var(&adapterGRPCAddress, "server-grpc", "Remote gRPC health address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&userToken, "token", "", "Bearer token of the signed-in user")
	fs.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	fs.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	fs.StringVar(&hashKey, "k", "", "Request body signing key")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Auto-sync interval (e.g., 30s)")
	fs.IntVar(&batchSize, "batch-size", 0, "Queue entries claimed per pass")
	fs.StringVar(&logFile, "log-file", "", "Client log file path")
	fs.BoolVar(&headless, "headless", false, "Run without the sync console")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		App: App{
			UserToken:    userToken,
			TokenSignKey: tokenSignKey,
			TokenIssuer:  tokenIssuer,
			HashKey:      hashKey,
			LogFile:      logFile,
			Headless:     headless,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    adapterAddress,
			GRPCAddress:    adapterGRPCAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
			BatchSize:    batchSize,
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
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
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

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
