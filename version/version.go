package version

var Version = "1.3.0"

var CommitID = "unknown"

var BuildInfo = "unknown"
