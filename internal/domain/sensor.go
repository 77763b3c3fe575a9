package domain

import (
	"fmt"
	"time"
)

// SensorType enumerates the sensors mounted on autonomous vehicles.
type SensorType string

const (
	SensorLidar  SensorType = "LIDAR"
	SensorCamera SensorType = "CAMERA"
	SensorRadar  SensorType = "RADAR"
	SensorGPS    SensorType = "GPS"
	SensorIMU    SensorType = "IMU"
)

func ParseSensorType(s string) (SensorType, error) {
	switch t := SensorType(s); t {
	case SensorLidar, SensorCamera, SensorRadar, SensorGPS, SensorIMU:
		return t, nil
	}
	return "", fmt.Errorf("invalid sensor type: %q", s)
}

// Position is a mounting point on the vehicle body, in metres.
type Position struct {
	X float64
	Y float64
	Z float64
}

// Simulated value returned by every sensor until real hardware is attached.
const simulatedReading = 42.0

type SensorReading struct {
	SensorID string
	Type     SensorType
	Value    float64
}

// Sensor is owned by exactly one RoboTaxi.
type Sensor struct {
	ID           string
	Type         SensorType
	Position     Position
	CalibratedAt *time.Time
	reads        int
}

func NewSensor(id string, sensorType SensorType, pos Position) *Sensor {
	return &Sensor{ID: id, Type: sensorType, Position: pos}
}

// ReadData polls the sensor once.
func (s *Sensor) ReadData() SensorReading {
	s.reads++
	return SensorReading{SensorID: s.ID, Type: s.Type, Value: simulatedReading}
}

// ReadCount reports how many times the sensor has been polled.
func (s *Sensor) ReadCount() int { return s.reads }

func (s *Sensor) Calibrate(at time.Time) {
	s.CalibratedAt = &at
}
