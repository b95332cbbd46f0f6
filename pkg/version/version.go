package version

var (
	// These values are injected during build - DO NOT MODIFY
	Version   = "dev"
	CommitSHA = "unknown"
)

func GetVersionInfo() string {
	return "pdfprint " + Version
}

func GetDetailedVersionInfo() string {
	return "pdfprint\n" +
		"Version:  " + Version + "\n" +
		"Commit:   " + CommitSHA + "\n"
}
