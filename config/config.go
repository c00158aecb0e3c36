package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       App            `mapstructure:"app"`
	Log       Logger         `mapstructure:"logger"`
	DB        Database       `mapstructure:"database"`
	API       API            `mapstructure:"api"`
	Scheduler Scheduler      `mapstructure:"scheduler"`
	Cache     Cache          `mapstructure:"cache"`
	Telegram  TelegramConfig `mapstructure:"telegram"`
	WhatsApp  WhatsAppConfig `mapstructure:"whatsapp"`
	Email     EmailConfig    `mapstructure:"email"`
}

type App struct {
	BaseURL         string `mapstructure:"base_url"`
	DefaultTimezone string `mapstructure:"default_timezone"`
	DefaultLanguage string `mapstructure:"default_language"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

type Scheduler struct {
	TickInterval      time.Duration `mapstructure:"tick_interval"`
	OverdueInterval   time.Duration `mapstructure:"overdue_interval"`
	ReminderLookback  time.Duration `mapstructure:"reminder_lookback"`
	ReminderLookahead time.Duration `mapstructure:"reminder_lookahead"`
	StopTimeout       time.Duration `mapstructure:"stop_timeout"`
	ScriptTimeout     time.Duration `mapstructure:"script_timeout"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type TelegramConfig struct {
	BotToken                  string        `mapstructure:"bot_token"`
	AlertChatID               string        `mapstructure:"alert_chat_id"`
	TimeoutDuration           time.Duration `mapstructure:"timeout_duration"`
	MaxGlobalRequestPerSecond int           `mapstructure:"max_global_request_per_second"`
	MaxChatRequestPerSecond   int           `mapstructure:"max_chat_request_per_second"`
}

type WhatsAppConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	APIKey      string        `mapstructure:"api_key"`
	SessionName string        `mapstructure:"session_name"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type EmailConfig struct {
	SMTPHost    string `mapstructure:"smtp_host"`
	SMTPPort    int    `mapstructure:"smtp_port"`
	SMTPUser    string `mapstructure:"smtp_user"`
	SMTPPass    string `mapstructure:"smtp_password"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
}

func Load() (*Config, error) {
	// A local .env is optional; deployments configure via real environment.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("app.default_timezone", "UTC")
	viper.SetDefault("app.default_language", "en")
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("scheduler.tick_interval", time.Minute)
	viper.SetDefault("scheduler.overdue_interval", time.Hour)
	viper.SetDefault("scheduler.reminder_lookback", 5*time.Minute)
	viper.SetDefault("scheduler.reminder_lookahead", time.Minute)
	viper.SetDefault("scheduler.stop_timeout", 5*time.Second)
	viper.SetDefault("scheduler.script_timeout", 60*time.Second)
	viper.SetDefault("cache.default_expiration", 2*time.Hour)
	viper.SetDefault("cache.cleanup_interval", 30*time.Minute)
	viper.SetDefault("telegram.timeout_duration", 10*time.Second)
	viper.SetDefault("telegram.max_global_request_per_second", 30)
	viper.SetDefault("telegram.max_chat_request_per_second", 1)
	viper.SetDefault("whatsapp.timeout", 10*time.Second)
	viper.SetDefault("whatsapp.session_name", "default")
	viper.SetDefault("email.smtp_port", 587)
	viper.SetDefault("email.from_name", "Personal Assistant")
}
