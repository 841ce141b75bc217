// A small local target for trying curly by hand:
//
//	go run ./scripts/test-server
//	curly get http://localhost:8080/todos/1
//	curly post http://localhost:8080/echo -d title=foo --json
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

func main() {
	http.HandleFunc("/todos/1", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":1,"title":"x","completed":false}`)
	})

	// Echoes a JSON or form body back as JSON.
	http.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		w.Header().Set("Content-Type", "application/json")

		if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
			w.WriteHeader(http.StatusCreated)
			io.Copy(w, r.Body)
			return
		}

		if err := r.ParseForm(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fields := map[string]string{}
		for name := range r.PostForm {
			fields[name] = r.PostForm.Get(name)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(fields)
	})

	// Responds with the status code named in the path, e.g. /status/404.
	http.HandleFunc("/status/", func(w http.ResponseWriter, r *http.Request) {
		code, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/status/"))
		if err != nil {
			code = http.StatusBadRequest
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		fmt.Fprintf(w, `{"status":%d}`, code)
	})

	server := &http.Server{
		Addr:              ":8080",
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	log.Printf("Starting curly test server on :8080")
	if err := server.ListenAndServe(); err != nil {
		log.Fatal(err)
	}
}
