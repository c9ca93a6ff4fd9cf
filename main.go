/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Tabella Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"flag"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/tabella/tabella/core/config"
	"github.com/tabella/tabella/demo"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:8097", "listen address")
	configPath := flag.String("config", "", "optional YAML config file")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	fmt.Println("Starting Tabella demo...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	server, err := demo.NewServer(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to start demo server")
	}
	defer server.Close()

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		server.HandleLanding(w, r)
	})
	http.HandleFunc("/table", server.HandleTable)

	fmt.Printf("Server starting on http://%s\n", *addr)
	logrus.Fatal(http.ListenAndServe(*addr, nil))
}
