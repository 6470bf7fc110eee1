package logsvc

import (
	"log"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/trezcool/thk/core"
	"github.com/trezcool/thk/core/user"
)

// RollbarLogger prints every entry to std and reports info and above to Rollbar.
// Reporting is on only outside debug mode and with a token configured.
type RollbarLogger struct {
	std *log.Logger
}

var _ core.Logger = (*RollbarLogger)(nil)

func NewRollbarLogger(std *log.Logger, conf *core.Config) *RollbarLogger {
	rollbar.SetToken(conf.RollbarToken)
	rollbar.SetEnvironment(conf.Env)
	rollbar.SetServerHost(conf.Server.Host)
	rollbar.SetCodeVersion(conf.Build)
	rollbar.SetStackTracer(errors.StackTracer)
	rollbar.SetCustom(map[string]interface{}{"app": conf.AppName})
	rollbar.SetEnabled(conf.RollbarToken != "" && !conf.Debug)
	return &RollbarLogger{std: std}
}

// report sends msg to Rollbar. args may hold errors, custom field maps and the
// signed-in user.User (as the Rollbar person; the first one wins).
func (l RollbarLogger) report(lvl Level, msg string, args []interface{}) {
	var person *user.User
	items := make([]interface{}, 0, len(args)+1)
	items = append(items, msg)
	for _, arg := range args {
		if usr, ok := arg.(user.User); ok {
			if person == nil {
				person = &usr
			}
			continue
		}
		items = append(items, arg)
	}
	if person != nil {
		rollbar.SetPerson(person.ID, person.Name, person.Email)
	} else {
		rollbar.ClearPerson()
	}

	switch lvl {
	case LevelInfo:
		rollbar.Info(items...)
	case LevelWarn:
		rollbar.Warning(items...)
	case LevelError:
		rollbar.Error(items...)
	case LevelFatal:
		rollbar.Critical(items...)
		rollbar.Wait()
	}
}

func (l RollbarLogger) print(lvl Level, msg string, args []interface{}) {
	l.std.Printf("[%s] %s", lvl, msg)
	for _, arg := range args {
		l.std.Printf("\t%+v", arg)
	}
}

// Debug entries stay local.
func (l RollbarLogger) Debug(msg string, args ...interface{}) {
	l.print(LevelDebug, msg, args)
}

func (l RollbarLogger) Info(msg string, args ...interface{}) {
	l.report(LevelInfo, msg, args)
	l.print(LevelInfo, msg, args)
}

func (l RollbarLogger) Warn(msg string, args ...interface{}) {
	l.report(LevelWarn, msg, args)
	l.print(LevelWarn, msg, args)
}

func (l RollbarLogger) Error(msg string, args ...interface{}) {
	l.report(LevelError, msg, args)
	l.print(LevelError, msg, args)
}

func (l RollbarLogger) Fatal(msg string, args ...interface{}) {
	l.report(LevelFatal, msg, args)
	l.print(LevelFatal, msg, args)
	l.std.Fatal(msg)
}
