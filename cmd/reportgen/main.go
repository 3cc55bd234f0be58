// Package main provides the reportgen CLI.
//
// reportgen renders meeting minutes and credit risk assessments as paginated
// PDF reports.
//
// Usage:
//
//	reportgen meeting -i analysis.json --name standup.mp3
//	reportgen risk -i applicant.yaml --narrative findings.md
//	reportgen batch jobs.yaml -j 8
//
// See --help for all available options.
package main

func main() {
	Execute()
}
