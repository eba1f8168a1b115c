package main

import (
	"conditionalert/pkg/domain/model"
	"conditionalert/pkg/domain/service"
	"conditionalert/pkg/infrastructure/event"
	"conditionalert/pkg/infrastructure/mysql"
	"conditionalert/pkg/infrastructure/mysql/query"
	"conditionalert/pkg/infrastructure/sms"
	"context"
	"github.com/jmoiron/sqlx"
	log "github.com/sirupsen/logrus"
)

func connectDB(ctx context.Context, c *config) (*sqlx.DB, error) {
	return mysql.Connect(ctx, mysql.DSN{
		User:     c.DBUser,
		Password: c.DBPassword,
		Host:     c.DBHost,
		Database: c.DBName,
	}, mysql.ConnectionOptions{
		MaxOpenConns:    c.DBMaxConn,
		MaxIdleConns:    c.DBMaxConn,
		ConnMaxLifetime: c.DBConnectionLifetime,
	})
}

func newSMSSender(c *config, dryRun bool) (model.SMSSender, error) {
	if dryRun {
		log.Info("dry run requested, messages will only be logged")
		return sms.LogSender{}, nil
	}
	if c.TwilioAccountSID == "" {
		log.Warn("twilio credentials not configured, messages will only be logged")
		return sms.LogSender{}, nil
	}
	return sms.NewTwilioSender(sms.TwilioConfig{
		AccountSID: c.TwilioAccountSID,
		AuthToken:  c.TwilioAuthToken,
		BaseURL:    c.TwilioBaseURL,
		Timeout:    c.TwilioTimeout,
	})
}

func newAlertHandler(c *config, db *sqlx.DB, sender model.SMSSender) service.ConditionAlertHandler {
	counter := query.NewEventCounter(db, query.CounterConfig{
		Condition:         c.WatchCondition,
		FilterByCondition: c.CountFilterByCondition,
	})
	return service.NewConditionAlertHandler(service.Config{
		Condition:  c.WatchCondition,
		Recipient:  c.SMSTo,
		Sender:     c.SMSFrom,
		Collection: c.WatchCollection,
	}, counter, sender, event.NewDispatcher())
}
