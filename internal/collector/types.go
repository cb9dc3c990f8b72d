package collector

// I2CAdapter is an I2C bus controller found under sysfs
type I2CAdapter struct {
	Index     int    `json:"index"`      // n in i2c-<n>
	Name      string `json:"name"`       // first line of the name attribute
	SysfsPath string `json:"sysfs_path"` // directory holding the name attribute
}

// DevNode returns the character device path for the adapter under devRoot
func (a I2CAdapter) DevNode(devRoot string) string {
	return DevNodePath(devRoot, a.Index)
}
