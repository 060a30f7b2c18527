package domain

const (
	// ConfigFileName is the default agent configuration file inside the project root.
	ConfigFileName = "tri.yaml"

	// FieldMappingFile declares the source table of a project.
	FieldMappingFile = "field_mapping.json"

	// DatasetTypesFile declares the datasets of a project.
	DatasetTypesFile = "dataset_types.json"

	// ReservingClassTypesFile declares the reserving class hierarchy of a project.
	ReservingClassTypesFile = "reserving_class_types.json"

	// GeneralSettingsFile declares the date window of a project.
	GeneralSettingsFile = "general_settings.json"

	// RequestExt is the extension of inbox request files.
	RequestExt = ".txt"

	// StagingDirName is the directory next to a response where it is staged before publishing.
	StagingDirName = "tmp"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// VPSFiles lists the files whose modification times version a project's settings.
var VPSFiles = []string{FieldMappingFile, DatasetTypesFile, ReservingClassTypesFile}
