package behavior

// RegisterDefaults installs the built-in behavior catalog.
func RegisterDefaults(reg *Registry) {
	reg.MustRegister(IDWander, NewWander)
	reg.MustRegister(IDEat, NewEat)
	reg.MustRegister(IDGather, NewGather)
	reg.MustRegister(IDGraze, NewGraze)
	reg.MustRegister(IDSleep, NewSleep)
	reg.MustRegister(IDFlee, NewFlee)
	reg.MustRegister(IDBuild, NewBuild)
	reg.MustRegister(IDSocialize, NewSocialize)
}
