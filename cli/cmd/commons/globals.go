package commons

// OutputFormat flag defines the output format to stdout (Enum:- json)
var OutputFormat string

const (
	// JsonOutput refers to json format output to stdout
	JsonOutput = "json"
)
