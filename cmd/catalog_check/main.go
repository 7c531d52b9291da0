// Command catalog_check loads the fee catalog, checks every category's
// totals and prints a summary. It exits non-zero when a category is
// inconsistent, so it can gate catalog edits in CI.
package main

import (
	"errors"
	"flag"
	"os"

	"estatefees/internal/catalog"
	"estatefees/internal/config"
	applog "estatefees/internal/logger"
	"estatefees/internal/services/feecalc"

	"github.com/sirupsen/logrus"
)

func main() {
	path := flag.String("file", "", "catalog YAML file (defaults to CATALOG_PATH, then the embedded catalog)")
	flag.Parse()

	config.LoadEnv()
	applog.Init(config.GetEnv("LOG_LEVEL", "info"), config.IsProduction())

	os.Exit(run(*path, applog.L))
}

func run(path string, log *logrus.Logger) int {
	if path == "" {
		path = config.GetEnv("CATALOG_PATH", "")
	}

	var (
		cat *catalog.Catalog
		err error
	)
	if path != "" {
		cat, err = catalog.LoadFile(path)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		log.WithError(err).Error("failed to load catalog")
		return 2
	}

	failed := 0
	for _, s := range cat.List() {
		fields := logrus.Fields{
			"category_id":      s.CategoryID,
			"fees":             len(s.FeeItems),
			"base_value":       feecalc.FormatCurrency(s.BasePropertyValue, s.Currency),
			"total_percentage": s.TotalPercentage,
			"gross_total":      feecalc.FormatCurrency(s.GrossTotal, s.Currency),
		}
		problems := catalog.ValidateStructure(s)
		if len(problems) == 0 {
			log.WithFields(fields).Info("category ok")
			continue
		}
		failed++
		log.WithFields(fields).WithError(errors.Join(problems...)).Error("category inconsistent")
	}

	if failed > 0 {
		log.WithField("failed", failed).Error("catalog check failed")
		return 1
	}
	log.WithField("categories", cat.Len()).Info("catalog check passed")
	return 0
}
