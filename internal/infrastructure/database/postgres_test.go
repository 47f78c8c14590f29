package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDBConfig_DSN(t *testing.T) {
	cfg := DBConfig{Host: "db", Port: 6543, User: "u", Password: "p", DBName: "notifications_db", SSLMode: "disable"}
	assert.Equal(t, "host=db port=6543 user=u password=p dbname=notifications_db sslmode=disable", cfg.DSN())
}
