package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App        App        `mapstructure:",squash"`
	Server     Server     `mapstructure:",squash"`
	Database   Database   `mapstructure:",squash"`
	Tracker    Tracker    `mapstructure:",squash"`
	Auth       Auth       `mapstructure:",squash"`
	ReportSync ReportSync `mapstructure:",squash"`
	Funnel     Funnel     `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Tracker configura o acesso ao serviço externo de tracking de eventos.
// APIKey e ProjectID ausentes não são erro: o adaptador degrada para
// "indisponível" sem tentar a chamada.
type Tracker struct {
	BaseURL    string `mapstructure:"tracker_base_url"`
	ProjectID  string `mapstructure:"tracker_project_id"`
	APIKey     string `mapstructure:"tracker_api_key"`
	FetchLimit int    `mapstructure:"tracker_fetch_limit"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type ReportSync struct {
	CronSchedule string `mapstructure:"report_sync_cron"`
	Enabled      bool   `mapstructure:"report_sync_enabled"`
}

// Funnel define as proporções do modo de estimativa do funil. São heurísticas
// de produto, não constantes medidas; por isso ficam configuráveis.
type Funnel struct {
	BrowseRate      float64 `mapstructure:"funnel_browse_rate"`
	ViewProductRate float64 `mapstructure:"funnel_view_product_rate"`
	AddToCartRate   float64 `mapstructure:"funnel_add_to_cart_rate"`
	CheckoutRate    float64 `mapstructure:"funnel_checkout_rate"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/agromarket")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("TRACKER_BASE_URL", "https://events.agromarket.app")
	viper.SetDefault("TRACKER_PROJECT_ID", "")
	viper.SetDefault("TRACKER_API_KEY", "")
	viper.SetDefault("TRACKER_FETCH_LIMIT", 10000)

	viper.SetDefault("AUTH_SECRET", "your_auth_secret")

	viper.SetDefault("REPORT_SYNC_CRON", "0 3 * * *") // Todos os dias às 3h da manhã
	viper.SetDefault("REPORT_SYNC_ENABLED", false)

	// Proporções padrão do funil estimado (ver internal/usecases/reporting)
	viper.SetDefault("FUNNEL_BROWSE_RATE", 0.75)
	viper.SetDefault("FUNNEL_VIEW_PRODUCT_RATE", 0.60)
	viper.SetDefault("FUNNEL_ADD_TO_CART_RATE", 0.18)
	viper.SetDefault("FUNNEL_CHECKOUT_RATE", 0.12)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
