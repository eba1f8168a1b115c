package main

import (
	"github.com/kelseyhightower/envconfig"
	log "github.com/sirupsen/logrus"
	"time"
)

const appID = "conditionalert"

type config struct {
	LogLevel string `envconfig:"log_level" default:"info"`

	ServeHTTPAddress string        `envconfig:"serve_http_address" default:":8080"`
	ServeGRPCAddress string        `envconfig:"serve_grpc_address" default:":8081"`
	ShutdownTimeout  time.Duration `envconfig:"shutdown_timeout" default:"15s"`

	DBUser               string        `envconfig:"db_user" required:"true"`
	DBPassword           string        `envconfig:"db_password" required:"true"`
	DBHost               string        `envconfig:"db_host" required:"true"`
	DBName               string        `envconfig:"db_name" required:"true"`
	DBMaxConn            int           `envconfig:"db_max_conn" default:"10"`
	DBConnectionLifetime time.Duration `envconfig:"db_conn_lifetime" default:"3m"`

	WatchCondition         string `envconfig:"watch_condition" default:"Influenza"`
	WatchCollection        string `envconfig:"watch_collection"`
	CountFilterByCondition bool   `envconfig:"count_filter_by_condition" default:"false"`

	SMSTo   string `envconfig:"sms_to" default:"+11111111111"`
	SMSFrom string `envconfig:"sms_from" default:"+2222222222"`

	TwilioAccountSID string        `envconfig:"twilio_account_sid"`
	TwilioAuthToken  string        `envconfig:"twilio_auth_token"`
	TwilioBaseURL    string        `envconfig:"twilio_base_url"`
	TwilioTimeout    time.Duration `envconfig:"twilio_timeout" default:"10s"`

	KafkaBrokers     string `envconfig:"kafka_brokers"`
	KafkaTopic       string `envconfig:"kafka_topic" default:"condition-events"`
	KafkaGroupID     string `envconfig:"kafka_group_id" default:"conditionalert"`
	KafkaConcurrency int    `envconfig:"kafka_concurrency" default:"8"`
}

func parseEnv() (*config, error) {
	c := new(config)
	if err := envconfig.Process(appID, c); err != nil {
		return nil, err
	}
	return c, nil
}

func setupLogger(c *config) {
	log.SetFormatter(&log.JSONFormatter{})
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithError(err).WithField("level", c.LogLevel).Warn("unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)
}
