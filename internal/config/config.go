package config

// Config is the root configuration shared by the word-list tools.
type Config struct {
	Log       LogConfig       `yaml:"log"`
	Cleaner   CleanerConfig   `yaml:"cleaner"`
	Converter ConverterConfig `yaml:"converter"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// CleanerConfig holds wordlist-clean settings.
type CleanerConfig struct {
	SplitPhrases bool `yaml:"split_phrases" env:"CLEANER_SPLIT_PHRASES" env-default:"false"`
}

// ConverterConfig holds wordlist-convert settings.
type ConverterConfig struct {
	Encoding  string `yaml:"encoding"   env:"CONVERTER_ENCODING"   env-default:"utf-8"`
	ChunkSize int    `yaml:"chunk_size" env:"CONVERTER_CHUNK_SIZE" env-default:"65536"`
}
