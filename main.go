package main

import (
	"fmt"
	"os"

	_ "nexustalent/docs"

	"github.com/spf13/cobra"
)

// @title           NexusTalent Pipeline API
// @version         1.0
// @description     Recruiter pipeline views over the applications of a job posting.

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

var rootCmd = &cobra.Command{
	Use:   "nexustalent",
	Short: "NexusTalent application pipeline tracker",
	Long:  "Serves recruiter pipeline views over the applications of a job posting, applies the database schema and exports pipeline reports.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
