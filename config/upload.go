package config

type UploadConfig struct {
	AllowedExtensions []string
	MaxSizeMB         int64
	PathPrefix        string
}

var UploadContexts = map[string]UploadConfig{
	"profile_photo": {
		AllowedExtensions: []string{".png", ".jpg", ".jpeg", ".gif"},
		MaxSizeMB:         16,
		PathPrefix:        "fotos",
	},
	// planilhas de importação (alunos, devices, equipamentos, inventário, tipos)
	"import_sheet": {
		AllowedExtensions: []string{".csv", ".xlsx"},
		MaxSizeMB:         16,
		PathPrefix:        "imports",
	},
	"restore_sql": {
		AllowedExtensions: []string{".sql"},
		MaxSizeMB:         16,
		PathPrefix:        "restore",
	},
}
