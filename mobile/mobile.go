/*
File Name:  mobile.go
Package:    mobile

The gomobile-bind entry point called from a Kotlin/Swift host, grounded on
the teacher's mobile/mobile.go: load the config relative to the host's
writable data directory, start the optional webapi status surface, and
run the two blocking service loops on their own goroutines.
*/
package mobile

import (
	"fmt"
	"sync/atomic"

	"github.com/airx-go/airx"
	"github.com/airx-go/airx/webapi"
)

var interrupted int32

// MobileMain is called as a bind function from the host application. path
// is a writable directory the host grants this process (gomobile can't
// write next to the APK/bundle); Config.yaml and the log file live there.
func MobileMain(path string) {
	var config airx.Config
	if status, err := airx.LoadConfig(path+"Config.yaml", &config); status != airx.ExitSuccess {
		fmt.Printf("error %d loading config: %v\n", status, err)
		config = airx.DefaultConfig()
	}

	config.LogFile = path + "Log.txt"
	config.Save(path + "Config.yaml")

	service := airx.New(config, airx.Filters{})

	webapi.Start(service, config.WebapiListen)

	go service.RunDiscovery(shouldInterrupt)
	go service.RunDataService(shouldInterrupt)
}

// MobileStop requests both service loops to return at their next
// should-interrupt poll.
func MobileStop() {
	atomic.StoreInt32(&interrupted, 1)
}

func shouldInterrupt() bool {
	return atomic.LoadInt32(&interrupted) != 0
}
