package main

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"

	"skillhub/internal/config"

	"github.com/fatih/color"
)

// prints the effective skillhub settings with secrets masked, handy when debugging env files
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"GO_ENV", cfg.GoEnv},
		{"HTTP_PORT", fmt.Sprint(cfg.HTTPPort)},
		{"TCP_ENABLED", fmt.Sprint(cfg.TCPEnabled)},
		{"TCP_PORT", fmt.Sprint(cfg.TCPPort)},
		{"DATABASE_URL", redactURL(cfg.DatabaseURL)},
		{"REDIS_URL", redactURL(cfg.RedisURL)},
		{"REDIS_PASSWORD", mask(cfg.RedisPassword)},
		{"CACHE_TTL", cfg.CacheTTL.String()},
		{"AUTH_ENABLED", fmt.Sprint(cfg.AuthEnabled)},
		{"JWT_SECRET", mask(cfg.JWTSecret)},
		{"ACCESS_TOKEN_TTL", cfg.AccessTokenTTL.String()},
		{"WS_SEND_BUFFER", fmt.Sprint(cfg.WSSendBuffer)},
		{"WS_MAX_MESSAGE_SIZE", fmt.Sprint(cfg.WSMaxMessageSize)},
		{"HEARTBEAT_SCHEDULE", cfg.HeartbeatSchedule},
		{"LOG_LEVEL", cfg.LogLevel},
		{"LOG_FORMAT", cfg.LogFormat},
		{"CORS_ORIGINS", strings.Join(cfg.CORSOrigins, ",")},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
	}
	w.Flush()

	if err := cfg.Validate(); err != nil {
		color.Red("\n%v", err)
		os.Exit(1)
	}
	color.Green("\nconfiguration is valid")
}

// mask keeps only the length of a secret visible
func mask(secret string) string {
	if secret == "" {
		return "(unset)"
	}
	return fmt.Sprintf("****** (%d chars)", len(secret))
}

func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(unparseable)"
	}
	return u.Redacted()
}
