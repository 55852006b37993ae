package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jrsteele09/training-portal/auth"
	"github.com/jrsteele09/training-portal/internal/config"
	"github.com/jrsteele09/training-portal/internal/logging"
	"github.com/jrsteele09/training-portal/server"
	"github.com/jrsteele09/training-portal/server/loginflow"
	"github.com/jrsteele09/training-portal/sessions"
	"github.com/jrsteele09/training-portal/sessions/filerepo"
	"github.com/jrsteele09/training-portal/sessions/redisrepo"
	fakesessionrepo "github.com/jrsteele09/training-portal/sessions/repofakes"
	"github.com/jrsteele09/training-portal/token"
	"github.com/jrsteele09/training-portal/users/directoryfile"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const flowSweepInterval = time.Minute

func main() {
	for {
		if err := run(); err != nil {
			log.Err(err).Msg("Error running server")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	logging.Setup(c.GetLogLevel(), config.IsDev(c.GetEnv()))
	displayAppname(c.GetAppName())

	directory, err := directoryfile.Load(c.GetDirectoryFile())
	if err != nil {
		return errors.Wrap(err, "load credential directory")
	}
	log.Info().Int("identities", len(directory.List())).Str("file", c.GetDirectoryFile()).Msg("credential directory loaded")

	repo, closeRepo, err := sessionRepo(c)
	if err != nil {
		return errors.Wrap(err, "open session storage")
	}
	defer closeRepo()

	stores, err := auth.NewStores(c.GetSessionSlot(), directory, repo, auth.WithCapacity(c.GetStoreCacheSize()))
	if err != nil {
		return errors.Wrap(err, "create session stores")
	}

	devices, err := deviceTokens(c)
	if err != nil {
		return errors.Wrap(err, "create device tokens")
	}

	portal, err := server.New(c, stores, devices, loginflow.NewInMemoryRepo())
	if err != nil {
		return errors.Wrap(err, "create server")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go portal.SweepLoginFlows(ctx, flowSweepInterval)

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           portal,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- listenAndServe(httpServer) }()

	select {
	case err := <-errCh:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

// sessionRepo opens the configured session backend and returns its closer.
func sessionRepo(c config.Config) (sessions.Repo, func(), error) {
	switch c.GetSessionBackend() {
	case config.SessionBackendMemory:
		log.Warn().Msg("sessions are kept in memory and will not survive a restart")
		return fakesessionrepo.NewFakeSessionRepo(), func() {}, nil
	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
			DB:       c.GetRedisDB(),
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, errors.Wrapf(err, "ping redis at %s", c.GetRedisAddr())
		}
		repo, err := redisrepo.New(client, redisrepo.WithTTL(c.GetRedisSessionTTL()))
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		log.Info().Str("addr", c.GetRedisAddr()).Dur("ttl", c.GetRedisSessionTTL()).Msg("sessions stored in redis")
		return repo, func() { _ = client.Close() }, nil
	default:
		repo, err := filerepo.New(c.GetDataFolder())
		if err != nil {
			return nil, nil, err
		}
		log.Info().Str("folder", c.GetDataFolder()).Msg("sessions stored on disk")
		return repo, func() {}, nil
	}
}

func deviceTokens(c config.Config) (*token.DeviceTokens, error) {
	secret := c.GetDeviceSecret()
	if secret == "" {
		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, errors.Wrap(err, "generate device secret")
		}
		secret = base64.RawURLEncoding.EncodeToString(b)
		log.Warn().Msg("DEVICE_SECRET not set, using a random secret; devices will be forgotten on restart")
	}
	signer, err := token.NewHMACSigner(secret)
	if err != nil {
		return nil, err
	}
	return token.NewDeviceTokens(c.GetAppName(), c.GetDeviceTokenTTL(), signer)
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "server.ListenAndServe")
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return errors.Wrap(err, "server.Shutdown")
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
