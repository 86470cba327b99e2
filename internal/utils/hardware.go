package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"net"
	"os"
	"strings"
)

// UnknownDevice is returned when no network interface can identify the machine.
const UnknownDevice = "UNKNOWN-DEVICE"

// GetDeviceID identifies the terminal the CLI runs on, so per-device
// preferences follow the machine rather than the user account. It hashes the
// first active MAC address into a short id like "TILL-A1B2C3D4".
func GetDeviceID() string {
	interfaces, err := net.Interfaces()
	if err != nil {
		return fallbackID()
	}

	var macAddress string
	for _, i := range interfaces {
		// Find the first active physical network interface
		if i.Flags&net.FlagUp != 0 && i.Flags&net.FlagLoopback == 0 && len(i.HardwareAddr) > 0 {
			macAddress = i.HardwareAddr.String()
			break
		}
	}

	if macAddress == "" {
		return fallbackID()
	}
	return DeviceIDFrom(macAddress)
}

// DeviceIDFrom hashes a hardware address into the display form.
func DeviceIDFrom(seed string) string {
	hash := sha256.Sum256([]byte(seed + "TEA-TIME-POS"))
	return "TILL-" + strings.ToUpper(hex.EncodeToString(hash[:])[:8])
}

// containers often have no MAC; the hostname is stable enough there
func fallbackID() string {
	if host, err := os.Hostname(); err == nil && host != "" {
		return DeviceIDFrom(host)
	}
	return UnknownDevice
}
