package services

import (
	"fmt"
	"strings"

	"github.com/Noziop/mkdf/internal/compose"
	"github.com/Noziop/mkdf/internal/ports"
)

// dbProfile holds what differs between database engines.
type dbProfile struct {
	image    string
	port     int
	volume   string
	dataPath string
	env      []string // .env lines
	userVar  string
	passVar  string
	nameVar  string
}

var dbProfiles = map[string]dbProfile{
	"postgresql": {
		image:    "postgres:15-alpine",
		port:     5432,
		volume:   "postgres_data",
		dataPath: "/var/lib/postgresql/data",
		env:      []string{"POSTGRES_USER=user", "POSTGRES_PASSWORD=password", "POSTGRES_DB=dbname"},
		userVar:  "POSTGRES_USER",
		passVar:  "POSTGRES_PASSWORD",
		nameVar:  "POSTGRES_DB",
	},
	"mysql": {
		image:    "mysql:8.0",
		port:     3306,
		volume:   "mysql_data",
		dataPath: "/var/lib/mysql",
		env:      []string{"MYSQL_ROOT_PASSWORD=rootpassword", "MYSQL_DATABASE=dbname", "MYSQL_USER=user", "MYSQL_PASSWORD=password"},
		userVar:  "MYSQL_USER",
		passVar:  "MYSQL_PASSWORD",
		nameVar:  "MYSQL_DATABASE",
	},
	"mariadb": {
		image:    "mariadb:11",
		port:     3306,
		volume:   "mariadb_data",
		dataPath: "/var/lib/mysql",
		env:      []string{"MARIADB_ROOT_PASSWORD=rootpassword", "MARIADB_DATABASE=dbname", "MARIADB_USER=user", "MARIADB_PASSWORD=password"},
		userVar:  "MARIADB_USER",
		passVar:  "MARIADB_PASSWORD",
		nameVar:  "MARIADB_DATABASE",
	},
	"mongodb": {
		image:    "mongo:7",
		port:     27017,
		volume:   "mongodb_data",
		dataPath: "/data/db",
		env:      []string{"MONGO_INITDB_ROOT_USERNAME=user", "MONGO_INITDB_ROOT_PASSWORD=password", "MONGO_INITDB_DATABASE=dbname"},
		userVar:  "MONGO_INITDB_ROOT_USERNAME",
		passVar:  "MONGO_INITDB_ROOT_PASSWORD",
		nameVar:  "MONGO_INITDB_DATABASE",
	},
}

// URL schemes per backend language; Python drivers need an explicit dialect.
var urlSchemes = map[string]map[string]string{
	"python": {"postgresql": "postgresql", "mysql": "mysql+pymysql", "mariadb": "mysql+pymysql", "mongodb": "mongodb"},
	"":       {"postgresql": "postgres", "mysql": "mysql", "mariadb": "mysql", "mongodb": "mongodb"},
}

// databaseURL is the connection string a backend written in lang uses to
// reach db inside the compose network.
func databaseURL(db, lang string) string {
	p, ok := dbProfiles[db]
	if !ok {
		return ""
	}
	schemes, ok := urlSchemes[lang]
	if !ok {
		schemes = urlSchemes[""]
	}
	return fmt.Sprintf("%s://${%s}:${%s}@%s:%d/${%s}", schemes[db], p.userVar, p.passVar, db, p.port, p.nameVar)
}

type databaseComponent struct {
	component
	profile dbProfile
}

func (d *databaseComponent) EnvVars() []string {
	return append([]string(nil), d.profile.env...)
}

func newDatabase(name string) Constructor {
	return func() Descriptor {
		p := dbProfiles[name]
		return &databaseComponent{
			profile: p,
			component: component{
				name: name, category: Database, role: ports.Database, port: p.port,
				service: func(c *component, sel Selection) *compose.Service {
					env := make([]string, 0, len(p.env))
					for _, line := range p.env {
						key, _, _ := strings.Cut(line, "=")
						env = append(env, fmt.Sprintf("%s=${%s}", key, key))
					}
					return &compose.Service{
						Image:         p.image,
						ContainerName: containerName(name),
						Restart:       "unless-stopped",
						Ports:         []string{portString(p.port)},
						Volumes:       []string{p.volume + ":" + p.dataPath},
						Environment:   env,
						Networks:      []string{"app-network"},
					}
				},
			},
		}
	}
}

func databaseFactory() *Factory {
	f := &Factory{Category: Database, constructors: map[string]Constructor{}}
	for name := range dbProfiles {
		f.constructors[name] = newDatabase(name)
	}
	return f
}
