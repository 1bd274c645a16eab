// Package main is the entry point for the iplstats CLI, which computes team
// results and player batting/bowling records from IPL ball-by-ball data.
package main

import "github.com/pable/go-ipl-stats/cmd"

func main() {
	cmd.Execute()
}
