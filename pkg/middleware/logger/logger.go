package logger

import (
	"context"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type ServiceEnv struct {
	Platform string
	Service  string
	Env      string
}

type LogConfig struct {
	Path       string
	LogLevel   string
	ServiceEnv ServiceEnv
}

var sugar *zap.SugaredLogger

// Init builds the process logger: JSON lines to a rotated file plus console
// output, tagged with the service identity.
func Init(conf *LogConfig) {
	level := zapcore.InfoLevel
	if err := level.UnmarshalText([]byte(conf.LogLevel)); err != nil {
		level = zapcore.InfoLevel
	}

	encoderConf := zap.NewProductionEncoderConfig()
	encoderConf.EncodeTime = zapcore.ISO8601TimeEncoder

	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   conf.Path,
		MaxSize:    100, // MB
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	})

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderConf), fileWriter, level),
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConf), zapcore.AddSync(os.Stdout), level),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).With(
		zap.String("platform", conf.ServiceEnv.Platform),
		zap.String("service", conf.ServiceEnv.Service),
		zap.String("env", conf.ServiceEnv.Env),
	)
	sugar = logger.Sugar()
}

func Close() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}

func base(_ context.Context) *zap.SugaredLogger {
	if sugar == nil {
		sugar = zap.NewNop().Sugar()
	}
	return sugar
}

func Debugf(ctx context.Context, format string, args ...any) {
	base(ctx).Debugf(format, args...)
}

func Infof(ctx context.Context, format string, args ...any) {
	base(ctx).Infof(format, args...)
}

func Warnf(ctx context.Context, format string, args ...any) {
	base(ctx).Warnf(format, args...)
}

func Errorf(ctx context.Context, format string, args ...any) {
	base(ctx).Errorf(format, args...)
}

func Fatalf(ctx context.Context, format string, args ...any) {
	base(ctx).Fatalf(format, args...)
}

// LogWithWriter is the gin access log middleware.
func LogWithWriter() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		path := ctx.Request.URL.Path

		ctx.Next()

		base(ctx).Infow("http request",
			"method", ctx.Request.Method,
			"path", path,
			"status", ctx.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", ctx.ClientIP(),
		)
	}
}
