// Command apprun prints the layered application settings of a directory.
//
// Usage:
//
//	apprun sources                         # list sources in apply order
//	apprun show -o yaml                    # print the merged configuration
//	apprun show -k Logging:Level           # print a single key
//	apprun -e MYAPP_ -s /etc/secret.json show
package main

import (
	"os"

	"github.com/MKhiriev/go-apprun/internal/cli"
	"github.com/MKhiriev/go-apprun/internal/logger"
	"github.com/MKhiriev/go-apprun/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	root := cli.NewRootCommand(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))
	if err := root.Execute(); err != nil {
		log := logger.NewLogger("apprun")
		log.Error().Err(err).Msg("apprun failed")
		os.Exit(1)
	}
}
