// Where: internal/checks/db.go
// What: Database reachability diagnostics for the configured backend.
package checks

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/translate/pootle/internal/config"
)

// dbPingTimeout bounds the connection attempt against the database.
const dbPingTimeout = 5 * time.Second

// CheckDatabase verifies the configured database backend is reachable.
func CheckDatabase(ctx context.Context, settings *config.Settings) []Result {
	switch settings.Database.Engine {
	case "sqlite":
		return checkSQLite(ctx, settings)
	case "mysql":
		return pingDatabase(ctx, "mysql", mysqlDSN(settings.Database), settings.Path())
	case "pgx":
		return pingDatabase(ctx, "pgx", postgresDSN(settings.Database), settings.Path())
	default:
		// Schema validation rejects unknown engines before checks run.
		return nil
	}
}

// checkSQLite opens an existing database file read-only. A file the server
// has not created yet is fine as long as its directory exists.
func checkSQLite(ctx context.Context, settings *config.Settings) []Result {
	path := settings.DatabasePath()
	if _, err := os.Stat(path); err != nil {
		if dir := filepath.Dir(path); !dirExists(dir) {
			return []Result{{
				ID:    "pootle.C006",
				Level: Critical,
				Msg:   fmt.Sprintf("The sqlite database directory %q does not exist.", dir),
				Hint:  "Create the directory so the server can initialize the database.",
			}}
		}
		return nil
	}
	return pingDatabase(ctx, "sqlite", "file:"+path+"?mode=ro", settings.Path())
}

func pingDatabase(ctx context.Context, driver, dsn, settingsPath string) []Result {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return []Result{connectFailure(err, settingsPath)}
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return []Result{connectFailure(err, settingsPath)}
	}
	return nil
}

func connectFailure(err error, settingsPath string) Result {
	return Result{
		ID:    "pootle.C006",
		Level: Critical,
		Msg:   fmt.Sprintf("Could not connect to the configured database (%v)", err),
		Hint:  fmt.Sprintf("Double-check the database settings in %q", settingsPath),
	}
}

func mysqlDSN(db config.DatabaseSettings) string {
	host := db.Host
	if host == "" {
		host = "localhost"
	}
	port := db.Port
	if port == "" {
		port = "3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?timeout=%s",
		db.User, db.Password, net.JoinHostPort(host, port), db.Name, dbPingTimeout)
}

func postgresDSN(db config.DatabaseSettings) string {
	host := db.Host
	if host == "" {
		host = "localhost"
	}
	port := db.Port
	if port == "" {
		port = "5432"
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + db.Name,
	}
	if db.User != "" {
		u.User = url.User(db.User)
		if db.Password != "" {
			u.User = url.UserPassword(db.User, db.Password)
		}
	}
	query := url.Values{}
	query.Set("connect_timeout", strconv.Itoa(int(dbPingTimeout/time.Second)))
	u.RawQuery = query.Encode()
	return u.String()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
