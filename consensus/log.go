package consensus

import (
	"github.com/forkscan/forkscand/logger"
)

var log = logger.RegisterSubSystem(logger.SubsystemTags.CNSS)
