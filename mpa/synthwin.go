// SPDX-License-Identifier: EPL-2.0

package mpa

// ISO 11172-3 synthesis window D, in units of 2^-15.
var synthWindowRaw = [512]float32{
	0, -0.5, -0.5, -0.5, -0.5, -0.5, -0.5, -1,
	-1, -1, -1, -1.5, -1.5, -2, -2, -2.5,
	-2.5, -3, -3.5, -3.5, -4, -4.5, -5, -5.5,
	-6.5, -7, -8, -8.5, -9.5, -10.5, -12, -13,
	-14.5, -15.5, -17.5, -19, -20.5, -22.5, -24.5, -26.5,
	-29, -31.5, -34, -36.5, -39.5, -42.5, -45.5, -48.5,
	-52, -55.5, -58.5, -62.5, -66, -69.5, -73.5, -77,
	-80.5, -84.5, -88, -91.5, -95, -98, -101, -104,
	106.5, 109, 111, 112.5, 113.5, 114, 114, 113.5,
	112, 110.5, 107.5, 104, 100, 94.5, 88.5, 81.5,
	73, 63.5, 53, 41.5, 28.5, 14.5, -1, -18,
	-36, -55.5, -76.5, -98.5, -122, -147, -173.5, -200.5,
	-229.5, -259.5, -290.5, -322.5, -355.5, -389.5, -424, -459.5,
	-495.5, -532, -568.5, -605, -641.5, -678, -714, -749,
	-783.5, -817, -849, -879.5, -908.5, -935, -959.5, -981,
	-1000.5, -1016, -1028.5, -1037.5, -1042.5, -1043.5, -1040, -1031.5,
	1018.5, 1000, 976, 946.5, 911, 869.5, 822, 767.5,
	707, 640, 565.5, 485, 397, 302.5, 201, 92.5,
	-22.5, -144, -272.5, -407, -547.5, -694, -846, -1003,
	-1165, -1331.5, -1502, -1675.5, -1852.5, -2031.5, -2212.5, -2394,
	-2576.5, -2758.5, -2939.5, -3118.5, -3294.5, -3467.5, -3635.5, -3798.5,
	-3955, -4104.5, -4245.5, -4377.5, -4499, -4609.5, -4708, -4792.5,
	-4863.5, -4919, -4958, -4979.5, -4983, -4967.5, -4931.5, -4875,
	-4796, -4694.5, -4569.5, -4420, -4246, -4046, -3820, -3567,
	3287, 2979.5, 2644, 2280.5, 1888, 1467.5, 1018.5, 541,
	35, -499, -1061, -1650, -2266.5, -2909, -3577, -4270,
	-4987.5, -5727.5, -6490, -7274, -8077.5, -8899.5, -9739, -10594.5,
	-11464.5, -12347, -13241, -14144.5, -15056, -15973.5, -16895.5, -17820,
	-18744.5, -19668, -20588, -21503, -22410.5, -23308.5, -24195, -25068.5,
	-25926.5, -26767, -27589, -28389, -29166.5, -29919, -30644.5, -31342,
	-32009.5, -32645, -33247, -33814.5, -34346, -34839.5, -35295, -35710,
	-36084.5, -36417.5, -36707.5, -36954, -37156.5, -37315, -37428, -37496,
	37519, 37496, 37428, 37315, 37156.5, 36954, 36707.5, 36417.5,
	36084.5, 35710, 35295, 34839.5, 34346, 33814.5, 33247, 32645,
	32009.5, 31342, 30644.5, 29919, 29166.5, 28389, 27589, 26767,
	25926.5, 25068.5, 24195, 23308.5, 22410.5, 21503, 20588, 19668,
	18744.5, 17820, 16895.5, 15973.5, 15056, 14144.5, 13241, 12347,
	11464.5, 10594.5, 9739, 8899.5, 8077.5, 7274, 6490, 5727.5,
	4987.5, 4270, 3577, 2909, 2266.5, 1650, 1061, 499,
	-35, -541, -1018.5, -1467.5, -1888, -2280.5, -2644, -2979.5,
	3287, 3567, 3820, 4046, 4246, 4420, 4569.5, 4694.5,
	4796, 4875, 4931.5, 4967.5, 4983, 4979.5, 4958, 4919,
	4863.5, 4792.5, 4708, 4609.5, 4499, 4377.5, 4245.5, 4104.5,
	3955, 3798.5, 3635.5, 3467.5, 3294.5, 3118.5, 2939.5, 2758.5,
	2576.5, 2394, 2212.5, 2031.5, 1852.5, 1675.5, 1502, 1331.5,
	1165, 1003, 846, 694, 547.5, 407, 272.5, 144,
	22.5, -92.5, -201, -302.5, -397, -485, -565.5, -640,
	-707, -767.5, -822, -869.5, -911, -946.5, -976, -1000,
	1018.5, 1031.5, 1040, 1043.5, 1042.5, 1037.5, 1028.5, 1016,
	1000.5, 981, 959.5, 935, 908.5, 879.5, 849, 817,
	783.5, 749, 714, 678, 641.5, 605, 568.5, 532,
	495.5, 459.5, 424, 389.5, 355.5, 322.5, 290.5, 259.5,
	229.5, 200.5, 173.5, 147, 122, 98.5, 76.5, 55.5,
	36, 18, 1, -14.5, -28.5, -41.5, -53, -63.5,
	-73, -81.5, -88.5, -94.5, -100, -104, -107.5, -110.5,
	-112, -113.5, -114, -114, -113.5, -112.5, -111, -109,
	106.5, 104, 101, 98, 95, 91.5, 88, 84.5,
	80.5, 77, 73.5, 69.5, 66, 62.5, 58.5, 55.5,
	52, 48.5, 45.5, 42.5, 39.5, 36.5, 34, 31.5,
	29, 26.5, 24.5, 22.5, 20.5, 19, 17.5, 15.5,
	14.5, 13, 12, 10.5, 9.5, 8.5, 8, 7,
	6.5, 5.5, 5, 4.5, 4, 3.5, 3.5, 3,
	2.5, 2.5, 2, 2, 1.5, 1.5, 1, 1,
	1, 1, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5,
}

// synthWindow is D scaled to the unit range.
var synthWindow [512]float32

func init() {
	for i, d := range synthWindowRaw {
		synthWindow[i] = d / 32768
	}
}
