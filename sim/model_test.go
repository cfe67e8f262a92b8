package sim

//go:generate mockgen -destination mock_model_test.go -package sim -write_package_comment=false github.com/outbreak-sim/outbreak-sim/sim TransmissionModel

// compile-time check that the stub satisfies the collaborator contract
var _ TransmissionModel = (*stubModel)(nil)
var _ TransmissionModel = (*MockTransmissionModel)(nil)
