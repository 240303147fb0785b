package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// configuration file.
type StructuredJSONConfig struct {
	App struct {
		LogLevel             string   `json:"log_level"`
		PasswordHashCost     int      `json:"password_hash_cost"`
		TokenSignKey         string   `json:"token_sign_key"`
		PasswordResetKey     string   `json:"password_reset_key"`
		TokenIssuer          string   `json:"token_issuer"`
		AccessTokenDuration  Duration `json:"access_token_duration"`
		RefreshTokenDuration Duration `json:"refresh_token_duration"`
		EmailTokenDuration   Duration `json:"email_token_duration"`
		PasswordResetTimeout Duration `json:"password_reset_timeout"`
		PublicURL            string   `json:"public_url"`
		ExpenseCategories    []string `json:"expense_categories"`
		Version              string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
			MaxIdleConns int    `json:"max_idle_conns"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
	} `json:"server,omitempty"`

	Mail struct {
		Driver       string   `json:"driver"`
		From         string   `json:"from"`
		APIURL       string   `json:"api_url"`
		APIToken     string   `json:"api_token"`
		AMQPURL      string   `json:"amqp_url"`
		AMQPExchange string   `json:"amqp_exchange"`
		AMQPQueue    string   `json:"amqp_queue"`
		Timeout      Duration `json:"timeout"`
		QueueSize    int      `json:"queue_size"`
	} `json:"mail,omitempty"`

	Workers struct {
		MailWorkers int `json:"mail_workers"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			LogLevel:             jsonCfg.App.LogLevel,
			PasswordHashCost:     jsonCfg.App.PasswordHashCost,
			TokenSignKey:         jsonCfg.App.TokenSignKey,
			PasswordResetKey:     jsonCfg.App.PasswordResetKey,
			TokenIssuer:          jsonCfg.App.TokenIssuer,
			AccessTokenDuration:  time.Duration(jsonCfg.App.AccessTokenDuration),
			RefreshTokenDuration: time.Duration(jsonCfg.App.RefreshTokenDuration),
			EmailTokenDuration:   time.Duration(jsonCfg.App.EmailTokenDuration),
			PasswordResetTimeout: time.Duration(jsonCfg.App.PasswordResetTimeout),
			PublicURL:            jsonCfg.App.PublicURL,
			ExpenseCategories:    jsonCfg.App.ExpenseCategories,
			Version:              jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN:          jsonCfg.Storage.DB.DSN,
				MaxOpenConns: jsonCfg.Storage.DB.MaxOpenConns,
				MaxIdleConns: jsonCfg.Storage.DB.MaxIdleConns,
			},
		},
		Server: Server{
			HTTPAddress:     jsonCfg.Server.HTTPAddress,
			RequestTimeout:  time.Duration(jsonCfg.Server.RequestTimeout),
			ShutdownTimeout: time.Duration(jsonCfg.Server.ShutdownTimeout),
		},
		Mail: Mail{
			Driver:       jsonCfg.Mail.Driver,
			From:         jsonCfg.Mail.From,
			APIURL:       jsonCfg.Mail.APIURL,
			APIToken:     jsonCfg.Mail.APIToken,
			AMQPURL:      jsonCfg.Mail.AMQPURL,
			AMQPExchange: jsonCfg.Mail.AMQPExchange,
			AMQPQueue:    jsonCfg.Mail.AMQPQueue,
			Timeout:      time.Duration(jsonCfg.Mail.Timeout),
			QueueSize:    jsonCfg.Mail.QueueSize,
		},
		Workers: Workers{
			MailWorkers: jsonCfg.Workers.MailWorkers,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
