package main

import (
  "fmt"
  "os"

  "github.com/yungbote/linguabridge-backend/internal/app"
)

func main() {
  application, err := app.New()
  if err != nil {
    fmt.Printf("failed to initialize app: %v\n", err)
    os.Exit(1)
  }
  defer application.Close()

  addr := ":" + application.Cfg.Port
  application.Log.Info("Starting HTTP server", "addr", addr)
  if err := application.Run(addr); err != nil {
    application.Log.Error("server exited", "error", err)
    os.Exit(1)
  }
}
