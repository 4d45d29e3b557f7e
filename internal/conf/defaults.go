// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "CommentNET-Go")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "commentnet.log")
	viper.SetDefault("main.log.maxsize", 100)
	viper.SetDefault("main.log.maxbackups", 3)
	viper.SetDefault("main.log.maxage", 28)

	// nlptown/bert-base-multilingual-uncased-sentiment served over HTTP
	viper.SetDefault("model.endpoint", "http://localhost:8501/v1/classify")
	viper.SetDefault("model.apikey", "")
	viper.SetDefault("model.timeout", 30)
	viper.SetDefault("model.name", "nlptown/bert-base-multilingual-uncased-sentiment")

	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.debug", false)
	viper.SetDefault("webserver.port", "8080")
	viper.SetDefault("webserver.log.enabled", true)
	viper.SetDefault("webserver.log.path", "webui.log")
	viper.SetDefault("webserver.log.maxsize", 100)
	viper.SetDefault("webserver.log.maxbackups", 3)
	viper.SetDefault("webserver.log.maxage", 28)

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "comments.db")

	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "commentnet")
	viper.SetDefault("output.mysql.password", "commentnet")
	viper.SetDefault("output.mysql.database", "commentnet")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")

	viper.SetDefault("ingest.csvpath", "preprocessed_ecom_data.csv")

	viper.SetDefault("export.filename", "E-Consultation_Feedback.xlsx")
	viper.SetDefault("export.sheet", "Comments")
}
