package integration_tests

// fanHCL declares a source unit, width independent workers reading it and a
// sink reading every worker.
const fanHCL = `
unit "Sleeper" "source" {}

unit "Sleeper" "A" {
  consumes = ["source"]
}
unit "Sleeper" "B" {
  consumes = ["source"]
}
unit "Sleeper" "C" {
  consumes = ["source"]
}
unit "Sleeper" "D" {
  consumes = ["source"]
}

unit "Sleeper" "sink" {
  consumes = ["A", "B", "C", "D"]
}

task "fanTask" {
  members = [unit.sink, unit.D, unit.C, unit.B, unit.A, unit.source]
}
sequence "fan" {
  members = [task.fanTask]
}
`
