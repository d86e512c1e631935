package main

import (
	"context"
	"os"
	"os/signal"
	"time"

	"waifubot/internal/adapters/anilist"
	"waifubot/internal/adapters/currency"
	"waifubot/internal/adapters/generator"
	"waifubot/internal/adapters/handler"
	"waifubot/internal/adapters/qr"
	"waifubot/internal/adapters/search"
	"waifubot/internal/adapters/sender"
	"waifubot/internal/adapters/storage"
	"waifubot/internal/adapters/weather"
	"waifubot/internal/core/domain/command"
	"waifubot/internal/core/domain/commands"
	"waifubot/internal/core/service"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting waifubot...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")
	viper.SetEnvPrefix("WAIFUBOT")
	viper.AutomaticEnv()

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	setDefaults()

	var logLevel zerolog.Level

	switch viper.GetString("bot.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	// refuse to start without credentials instead of failing mid-command
	for _, key := range []string{
		"discord.token",
		"deepseek.api_key",
		"search.api_key",
		"search.engine_id",
		"currency.api_key",
		"weather.api_key",
	} {
		if viper.GetString(key) == "" {
			log.Fatal().Str("key", key).Msg("missing required credential")
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	store, err := storage.Open(viper.GetString("store.path"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed opening collectible store")
	}

	session, err := discordgo.New("Bot " + viper.GetString("discord.token"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing discord session")
	}

	cacheTTL, err := time.ParseDuration(viper.GetString("bot.cache_ttl"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid cache TTL in config")
	}

	stats := service.NewStats()
	pages := service.NewPageCache(ctx, cacheTTL)
	rolls := service.NewRollTracker(ctx, cacheTTL)

	completer := generator.NewDeepSeek(
		viper.GetString("deepseek.endpoint"),
		viper.GetString("deepseek.model"),
		viper.GetString("deepseek.api_key"))
	searcher := search.NewGoogle(
		viper.GetString("search.endpoint"),
		viper.GetString("search.api_key"),
		viper.GetString("search.engine_id"))
	converter := currency.NewExchangeRate(
		viper.GetString("currency.endpoint"),
		viper.GetString("currency.api_key"))
	weatherProvider := weather.NewOpenWeather(
		viper.GetString("weather.endpoint"),
		viper.GetString("weather.api_key"))
	qrEncoder := qr.NewQRServer(viper.GetString("qr.endpoint"))
	characters := anilist.NewAniList(viper.GetString("anilist.endpoint"))

	registry := &command.Registry{}

	searchHandler := commands.NewSearchHandler(searcher, pages, "search")

	registry.Register(commands.NewAskHandler(completer, stats, "ask"))
	registry.Register(commands.NewSummarizeHandler(completer, stats, "summarize"))
	registry.Register(commands.NewTranslateHandler(completer, "translate"))
	registry.Register(searchHandler)
	registry.Register(commands.NewCurrencyHandler(converter, "convert-currency"))
	registry.Register(commands.NewWeatherHandler(weatherProvider, "weather"))
	registry.Register(commands.NewQRHandler(qrEncoder, "qr-gen"))
	registry.Register(commands.NewRollHandler(characters, rolls, "gachawaifu"))
	registry.Register(commands.NewFindHandler(characters, "findwaifu"))
	registry.Register(commands.NewClaimHandler(store, rolls, "klaimwaifu"))
	registry.Register(commands.NewTopHandler(store, sender.NewUserDirectory(session), "topwaifu"))
	registry.Register(commands.NewPingHandler("ping"))
	registry.Register(commands.NewStatsHandler(stats, "stats"))
	registry.Register(commands.NewHelpHandler(registry, "help"))

	handlerTimeout, err := time.ParseDuration(viper.GetString("handler.timeout"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid timeout for handler in config")
	}

	interactionHandler := handler.NewInteraction(registry, searchHandler, handlerTimeout)

	session.AddHandler(interactionHandler.Handle)
	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		log.Info().Str("username", r.User.Username).Msg("bot connected")
	})
	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	if err := session.Open(); err != nil {
		log.Fatal().Err(err).Msg("failed opening discord connection")
	}

	log.Info().Msg("bot listening")
	<-ctx.Done()

	log.Info().Msg("shutting down")
	if err := session.Close(); err != nil {
		log.Error().Err(err).Msg("failed closing discord connection")
	}
}

func setDefaults() {
	viper.SetDefault("bot.log_level", "info")
	viper.SetDefault("bot.cache_ttl", "15m")
	viper.SetDefault("handler.timeout", "60s")
	viper.SetDefault("store.path", "waifubot.db")
	viper.SetDefault("deepseek.endpoint", "https://api.deepseek.com/v1/chat/completions")
	viper.SetDefault("deepseek.model", "deepseek-chat")
	viper.SetDefault("search.endpoint", "https://www.googleapis.com/customsearch/v1")
	viper.SetDefault("currency.endpoint", "https://api.exchangerate.host/convert")
	viper.SetDefault("weather.endpoint", "https://api.openweathermap.org/data/2.5/weather")
	viper.SetDefault("qr.endpoint", "https://api.qrserver.com/v1/create-qr-code/")
	viper.SetDefault("anilist.endpoint", "https://graphql.anilist.co")
}
