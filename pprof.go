package main

import (
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"
)

// pprof на отдельном адресе, только когда задан -pprof
func enablePPROF(addr string) {
	srv := &http.Server{Addr: addr, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		log.Printf("pprof: http://%s/debug/pprof/", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("pprof error: %v", err)
		}
	}()
}
