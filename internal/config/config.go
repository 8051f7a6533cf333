package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/vitarsport/sales-analytics-api/internal/domain"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Dataset       Dataset       `mapstructure:",squash"`
	Rates         Rates         `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	DatasetReload DatasetReload `mapstructure:",squash"`
	Roster        domain.Roster `mapstructure:"-"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// Dataset points to the exported accounting files on disk.
type Dataset struct {
	OrdersDir   string `mapstructure:"dataset_orders_dir"`
	InvoicesDir string `mapstructure:"dataset_invoices_dir"`
	StockFile   string `mapstructure:"dataset_stock_file"`
	PlanFile    string `mapstructure:"dataset_plan_file"`
}

// Rates holds the fixed currency conversion used for combined reporting.
type Rates struct {
	EURToCZK float64 `mapstructure:"rate_eur_to_czk"`
}

type Auth struct {
	Secret         string `mapstructure:"auth_secret"`
	AdminPassword  string `mapstructure:"auth_admin_password"`
	ViewerPassword string `mapstructure:"auth_viewer_password"`
}

type DatasetReload struct {
	CronSchedule string `mapstructure:"dataset_reload_cron"`
	Enabled      bool   `mapstructure:"dataset_reload_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATASET_ORDERS_DIR", "./data/orders")
	viper.SetDefault("DATASET_INVOICES_DIR", "./data/invoices")
	viper.SetDefault("DATASET_STOCK_FILE", "./data/stock.json")
	viper.SetDefault("DATASET_PLAN_FILE", "./data/plan.json")

	viper.SetDefault("RATE_EUR_TO_CZK", 25.0)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")
	viper.SetDefault("AUTH_ADMIN_PASSWORD", "change_me")   // ONLY LOCAL
	viper.SetDefault("AUTH_VIEWER_PASSWORD", "change_me2") // ONLY LOCAL

	viper.SetDefault("DATASET_RELOAD_CRON", "0 5 * * *") // every day at 5am, after the accounting export
	viper.SetDefault("DATASET_RELOAD_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using variables loaded by godotenv (viper could not read .env):", err)
	} else {
		logrus.Info(".env file read by viper")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	// The centre-to-salesperson mapping follows the accounting convention
	// agreed with the back office. Documents without a centre belong to the
	// company itself.
	config.Roster = domain.DefaultRoster()

	return config, nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not determine working directory:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../.env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info(".env file loaded from:", location)
			return
		}
	}

	logrus.Warn("no .env file found in any known location")
}
