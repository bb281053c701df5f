package main

import (
	"github.com/sirupsen/logrus"

	"github.com/omarcoswillian/monitora-prymo-sub000/cmd"
)

// @title MonitoraPrymo API
// @version 1.0
// @description Site-health monitoring API: page registry, checks, incidents and notifications.
// @BasePath /api/v1
func main() {
	err := cmd.NewRootCmd().Execute()
	if err != nil {
		logrus.Fatalf("Error executing command: %v", err)
	}
}
