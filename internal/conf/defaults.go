// conf/defaults.go default values for settings
package conf

import "github.com/spf13/viper"

// setDefaultConfig sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "Katutubo")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "katutubo.log")
	viper.SetDefault("main.log.maxsize", 10)
	viper.SetDefault("main.log.maxage", 30)

	viper.SetDefault("webserver.enabled", true)
	viper.SetDefault("webserver.host", "0.0.0.0")
	viper.SetDefault("webserver.port", "8090")

	viper.SetDefault("output.sqlite.enabled", true)
	viper.SetDefault("output.sqlite.path", "katutubo.db")
	viper.SetDefault("output.mysql.enabled", false)
	viper.SetDefault("output.mysql.username", "katutubo")
	viper.SetDefault("output.mysql.password", "")
	viper.SetDefault("output.mysql.database", "katutubo")
	viper.SetDefault("output.mysql.host", "localhost")
	viper.SetDefault("output.mysql.port", "3306")

	viper.SetDefault("media.path", "media/")
	viper.SetDefault("media.maxsizemb", 8)
	viper.SetDefault("media.publicpath", "/media")

	viper.SetDefault("security.sessionttlminutes", 720)
	viper.SetDefault("security.seedadminemail", "")
	viper.SetDefault("security.seedadminpassword", "")

	viper.SetDefault("registry.municipality", "Catanauan")
	viper.SetDefault("registry.province", "Quezon")
	viper.SetDefault("registry.statscacheseconds", 30)

	viper.SetDefault("registry.search.suggestionlimit", 8)
	viper.SetDefault("registry.search.fallbackscanlimit", 120)
	viper.SetDefault("registry.search.debouncemillis", 220)

	viper.SetDefault("registry.vocabulary.studentkeywords", []string{
		"student", "estudyante", "pupil", "learner",
		"senior high", "junior high", "shs", "jhs",
		"elementary student", "college student", "university student",
	})
	viper.SetDefault("registry.vocabulary.emptyoccupationmarkers", []string{
		"none", "n/a", "na", "-", "wala",
	})
	viper.SetDefault("registry.vocabulary.healthysynonyms", []string{
		"n/a", "na", "none", "healthy", "no health condition",
		"no health", "no condition", "good", "-", "normal",
	})
}
