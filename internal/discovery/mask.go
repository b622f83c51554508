package discovery

// drivesFromMask converts a GetLogicalDrives bitmask (bit 0 = A) to volume roots.
func drivesFromMask(mask uint32) []string {
	var drives []string
	for i := range 26 {
		if mask&(1<<uint(i)) != 0 {
			drives = append(drives, string(rune('A'+i))+`:\`)
		}
	}
	return drives
}
