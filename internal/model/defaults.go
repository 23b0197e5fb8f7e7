package model

// Shared defaults used by both the relayd and cdrtail binaries.
const (
	DefaultClientID   = "default_client"
	DefaultZabbixHost = "Client-1-Log-API"
	DefaultLogAPIURL  = "http://127.0.0.1:20051"
	DefaultZabbixAddr = "zabbix-server"
	DefaultZabbixPort = 10051
	DefaultListenPort = 8080
)
